package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements Provider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete survey configuration from the database.
// Schema: keywords(name, token), columns(field, col_name), settings(name, value).
func (s *SQLiteProvider) LoadConfig() (*SurveyData, error) {
	config := Default()

	keywords, err := s.loadKeywords()
	if err != nil {
		return nil, fmt.Errorf("failed to load keywords: %w", err)
	}
	if keywords != nil {
		config.Keywords = keywords
	}

	if err := s.loadColumns(&config.Columns); err != nil {
		return nil, fmt.Errorf("failed to load column mappings: %w", err)
	}

	if err := s.loadSettings(config); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (s *SQLiteProvider) loadKeywords() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT name, token FROM keywords ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keywords map[string]string
	for rows.Next() {
		var name, token string
		if err := rows.Scan(&name, &token); err != nil {
			return nil, err
		}
		if keywords == nil {
			keywords = make(map[string]string)
		}
		keywords[name] = token
	}
	return keywords, rows.Err()
}

func (s *SQLiteProvider) loadColumns(cols *ColumnMap) error {
	rows, err := s.db.Query(`SELECT field, col_name FROM columns`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var field, column string
		if err := rows.Scan(&field, &column); err != nil {
			return err
		}
		switch field {
		case "shot_number":
			cols.ShotNumber = column
		case "northing":
			cols.Northing = column
		case "easting":
			cols.Easting = column
		case "elevation":
			cols.Elevation = column
		case "description":
			cols.Description = column
		default:
			return fmt.Errorf("unknown column mapping field %q", field)
		}
	}
	return rows.Err()
}

func (s *SQLiteProvider) loadSettings(config *SurveyData) error {
	rows, err := s.db.Query(`SELECT name, value FROM settings`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return err
		}
		switch name {
		case "break_char":
			config.BreakChar = value
		case "comment_char":
			config.CommentChar = value
		case "units":
			config.Units = value
		case "match_mode":
			config.MatchMode = value
		}
	}
	return rows.Err()
}

// IsReadOnly returns false; SQLite configurations can be modified
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
