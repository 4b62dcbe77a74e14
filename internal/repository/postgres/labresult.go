package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/repository"
)

type labResultRepository struct {
	db *sqlx.DB
}

func NewLabResultRepository(db *sqlx.DB) repository.LabResultRepository {
	return &labResultRepository{db: db}
}

func (r *labResultRepository) Create(ctx context.Context, result *model.LabResult) error {
	query := `
		INSERT INTO lab_results (id, emr_id, test_name, test_date, result_file_path, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	result.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		result.ID,
		result.EMRID,
		result.TestName,
		result.TestDate,
		result.ResultFilePath,
		result.Notes,
		result.CreatedAt,
	)
	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to create lab result: %w", err)
	}
	return nil
}

func (r *labResultRepository) ListByEMR(ctx context.Context, emrID uuid.UUID) ([]*model.LabResult, error) {
	query := `SELECT * FROM lab_results WHERE emr_id = $1 ORDER BY created_at`
	var results []*model.LabResult
	if err := r.db.SelectContext(ctx, &results, query, emrID); err != nil {
		return nil, fmt.Errorf("failed to list lab results: %w", err)
	}
	return results, nil
}
