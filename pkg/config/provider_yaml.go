package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements Provider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from the YAML file. Fields
// omitted from the file fall back to the defaults, so a minimal file can
// override just the column names or a single keyword.
func (y *YAMLProvider) LoadConfig() (*SurveyData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var yamlConfig struct {
		Keywords    map[string]string `yaml:"keywords"`
		BreakChar   string            `yaml:"break_char"`
		CommentChar string            `yaml:"comment_char"`
		Columns     ColumnMap         `yaml:"columns"`
		Units       string            `yaml:"units"`
		MatchMode   string            `yaml:"match_mode"`
	}

	if err := yaml.Unmarshal(cfgFile, &yamlConfig); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", y.filename, err)
	}

	config := Default()
	// A keyword table in the file replaces the default table wholesale, so
	// a table missing a required entry fails validation rather than being
	// silently backfilled.
	if yamlConfig.Keywords != nil {
		config.Keywords = yamlConfig.Keywords
	}
	if yamlConfig.BreakChar != "" {
		config.BreakChar = yamlConfig.BreakChar
	}
	if yamlConfig.CommentChar != "" {
		config.CommentChar = yamlConfig.CommentChar
	}
	if yamlConfig.Columns.ShotNumber != "" {
		config.Columns.ShotNumber = yamlConfig.Columns.ShotNumber
	}
	if yamlConfig.Columns.Northing != "" {
		config.Columns.Northing = yamlConfig.Columns.Northing
	}
	if yamlConfig.Columns.Easting != "" {
		config.Columns.Easting = yamlConfig.Columns.Easting
	}
	if yamlConfig.Columns.Elevation != "" {
		config.Columns.Elevation = yamlConfig.Columns.Elevation
	}
	if yamlConfig.Columns.Description != "" {
		config.Columns.Description = yamlConfig.Columns.Description
	}
	if yamlConfig.Units != "" {
		config.Units = yamlConfig.Units
	}
	if yamlConfig.MatchMode != "" {
		config.MatchMode = yamlConfig.MatchMode
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// IsReadOnly returns true; YAML files are not written by this provider
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML providers
func (y *YAMLProvider) Close() error {
	return nil
}
