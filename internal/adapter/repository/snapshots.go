// Package repository persists resume snapshots and export jobs to the
// embedded SQLite database.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/store"
)

// StorageKey is the fixed key the single snapshot row lives under.
const StorageKey = "resume-storage"

// SchemaVersion is written into every snapshot envelope for forward
// compatibility; readers currently accept any version.
const SchemaVersion = 1

// snapshotEnvelope is the persisted JSON shape.
type snapshotEnvelope struct {
	ResumeData model.ResumeData `json:"resumeData"`
	Version    int              `json:"version,omitempty"`
}

type snapshotRow struct {
	StoreKey  string         `gorm:"primaryKey;column:store_key"`
	Data      datatypes.JSON `gorm:"column:data"`
	Version   int            `gorm:"column:version"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (snapshotRow) TableName() string { return "resume_snapshots" }

type exportJobRow struct {
	ID         string         `gorm:"primaryKey"`
	Strategy   string         `gorm:"column:strategy"`
	Filename   string         `gorm:"column:filename"`
	Status     string         `gorm:"column:status"`
	Error      string         `gorm:"column:error"`
	OutputPath string         `gorm:"column:output_path"`
	Metadata   datatypes.JSON `gorm:"column:metadata"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (exportJobRow) TableName() string { return "export_jobs" }

var _ store.Snapshots = (*Repo)(nil)

type Repo struct {
	db *gorm.DB
}

// New migrates the tables and returns the repo.
func New(db *gorm.DB) (*Repo, error) {
	if err := db.AutoMigrate(&snapshotRow{}, &exportJobRow{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &Repo{db: db}, nil
}

// Load reads the snapshot under StorageKey. Returns nil with no error when
// nothing has been persisted yet.
func (r *Repo) Load(ctx context.Context) (*model.ResumeData, error) {
	var row snapshotRow
	err := r.db.WithContext(ctx).First(&row, "store_key = ?", StorageKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var env snapshotEnvelope
	if err := json.Unmarshal(row.Data, &env); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &env.ResumeData, nil
}

// Save upserts the snapshot row under StorageKey.
func (r *Repo) Save(ctx context.Context, data model.ResumeData) error {
	payload, err := json.Marshal(snapshotEnvelope{ResumeData: data, Version: SchemaVersion})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	row := snapshotRow{
		StoreKey:  StorageKey,
		Data:      payload,
		Version:   SchemaVersion,
		UpdatedAt: time.Now(),
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "version", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// SaveJob upserts an export job row so job status survives a restart.
func (r *Repo) SaveJob(ctx context.Context, j *domain.ExportJob) error {
	metaB, _ := json.Marshal(j.Metadata)
	row := exportJobRow{
		ID:         j.ID.String(),
		Strategy:   j.Strategy,
		Filename:   j.Filename,
		Status:     j.Status,
		Error:      j.Error,
		OutputPath: j.OutputPath,
		Metadata:   metaB,
		CreatedAt:  j.CreatedAt,
		UpdatedAt:  j.UpdatedAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"strategy", "filename", "status", "error", "output_path", "metadata", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save export job: %w", err)
	}
	return nil
}

// GetJob looks up an export job by id. Returns nil with no error when the
// job does not exist.
func (r *Repo) GetJob(ctx context.Context, id uuid.UUID) (*domain.ExportJob, error) {
	var row exportJobRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load export job: %w", err)
	}

	jobID, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("parse job id: %w", err)
	}
	job := &domain.ExportJob{
		ID:         jobID,
		Strategy:   row.Strategy,
		Filename:   row.Filename,
		Status:     row.Status,
		Error:      row.Error,
		OutputPath: row.OutputPath,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if len(row.Metadata) > 0 {
		_ = json.Unmarshal(row.Metadata, &job.Metadata)
	}
	return job, nil
}
