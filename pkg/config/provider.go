package config

// Provider defines the interface for configuration data sources
type Provider interface {
	// LoadConfig loads the complete survey configuration
	LoadConfig() (*SurveyData, error)

	// IsReadOnly reports whether the backing store can be written
	IsReadOnly() bool

	// Close releases any resources held by the provider
	Close() error
}
