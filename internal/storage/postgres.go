package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go.uber.org/zap"

	"github.com/fluvgeo/streamsurvey/internal/log"
)

// RunRow is the runs table model.
type RunRow struct {
	RunID     string    `gorm:"primaryKey;column:run_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	Units     string    `gorm:"column:units"`
}

func (RunRow) TableName() string { return "runs" }

// ProfilePointRow is one stationed profile record.
type ProfilePointRow struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	RunID       string  `gorm:"index;column:run_id"`
	ProfileName string  `gorm:"column:profile_name"`
	Seq         int     `gorm:"column:seq"`
	Station     float64 `gorm:"column:station"`
	Northing    float64 `gorm:"column:northing"`
	Easting     float64 `gorm:"column:easting"`
	Elevation   float64 `gorm:"column:elevation"`
	Feature     string  `gorm:"column:feature"`
}

func (ProfilePointRow) TableName() string { return "profile_points" }

// XSPointRow is one stationed cross-section point.
type XSPointRow struct {
	ID                 uint    `gorm:"primaryKey;autoIncrement"`
	RunID              string  `gorm:"index;column:run_id"`
	SectionName        string  `gorm:"column:section_name"`
	Morphology         string  `gorm:"column:morphology"`
	UnresolvedOverhang bool    `gorm:"column:unresolved_overhang"`
	Seq                int     `gorm:"column:seq"`
	Station            float64 `gorm:"column:station"`
	Elevation          float64 `gorm:"column:elevation"`
}

func (XSPointRow) TableName() string { return "xs_points" }

// DiagnosticRow is one structured diagnostic. ShotNumber is nullable:
// not every diagnostic concerns a single shot.
type DiagnosticRow struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	RunID      string `gorm:"index;column:run_id"`
	Kind       string `gorm:"column:kind"`
	GroupKey   string `gorm:"column:group_key"`
	ShotNumber *int   `gorm:"column:shot_number"`
	Message    string `gorm:"column:message"`
}

func (DiagnosticRow) TableName() string { return "diagnostics" }

// PostgresBackend stores runs in Postgres through GORM.
type PostgresBackend struct {
	db *gorm.DB
}

// NewPostgresBackend connects and migrates the result tables.
func NewPostgresBackend(dsn string) (*PostgresBackend, error) {
	// Route GORM's logging through zap.
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("unable to create a Postgres connection: %w", err)
	}

	if err := db.AutoMigrate(&RunRow{}, &ProfilePointRow{}, &XSPointRow{}, &DiagnosticRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate result tables: %w", err)
	}

	return &PostgresBackend{db: db}, nil
}

// SaveRun writes the complete run in one transaction.
func (b *PostgresBackend) SaveRun(ctx context.Context, r *Result) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&RunRow{
			RunID:     r.RunID.String(),
			CreatedAt: r.CreatedAt,
			Units:     r.Units,
		}).Error; err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}

		if rows := profileRows(r); len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to insert profile points: %w", err)
			}
		}
		if rows := xsRows(r); len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to insert cross-section points: %w", err)
			}
		}
		if rows := diagnosticRows(r); len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to insert diagnostics: %w", err)
			}
		}
		return nil
	})
}

func profileRows(r *Result) []ProfilePointRow {
	var rows []ProfilePointRow
	for _, p := range r.Profiles {
		for i, rec := range p.Records {
			rows = append(rows, ProfilePointRow{
				RunID:       r.RunID.String(),
				ProfileName: p.Name,
				Seq:         i,
				Station:     rec.Station,
				Northing:    rec.Northing,
				Easting:     rec.Easting,
				Elevation:   rec.Elevation,
				Feature:     string(rec.Feature),
			})
		}
	}
	return rows
}

func xsRows(r *Result) []XSPointRow {
	var rows []XSPointRow
	for _, xs := range r.CrossSections {
		for i, pt := range xs.Points {
			rows = append(rows, XSPointRow{
				RunID:              r.RunID.String(),
				SectionName:        xs.Name,
				Morphology:         string(xs.Morphology),
				UnresolvedOverhang: xs.HasUnresolvedOverhang,
				Seq:                i,
				Station:            pt.Station,
				Elevation:          pt.Elevation,
			})
		}
	}
	return rows
}

func diagnosticRows(r *Result) []DiagnosticRow {
	var rows []DiagnosticRow
	for _, d := range r.Diagnostics {
		rows = append(rows, DiagnosticRow{
			RunID:      r.RunID.String(),
			Kind:       string(d.Kind),
			GroupKey:   d.GroupKey,
			ShotNumber: d.ShotNumber,
			Message:    d.Message,
		})
	}
	return rows
}

// Close releases the underlying connection pool.
func (b *PostgresBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
