package survey

import "strings"

// Tokenize splits one raw shot description into a header segment and zero
// or more indicator segments. Everything from the first comment character
// on is trailing commentary and is discarded (the comment character
// included); the remainder is split on every break character. The result
// is always non-empty and no segment contains the break character.
func Tokenize(desc, breakChar, commentChar string) []string {
	if i := strings.Index(desc, commentChar); i >= 0 {
		desc = desc[:i]
	}
	return strings.Split(desc, breakChar)
}
