package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/repository"
)

type healthMetricRepository struct {
	db *sqlx.DB
}

func NewHealthMetricRepository(db *sqlx.DB) repository.HealthMetricRepository {
	return &healthMetricRepository{db: db}
}

func (r *healthMetricRepository) Create(ctx context.Context, metric *model.HealthMetric) error {
	query := `
		INSERT INTO health_metrics (id, patient_id, metric_type, value, unit, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	metric.RecordedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		metric.ID,
		metric.PatientID,
		metric.MetricType,
		metric.Value,
		metric.Unit,
		metric.RecordedAt,
	)
	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to create health metric: %w", err)
	}
	return nil
}

func (r *healthMetricRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.HealthMetric, error) {
	query := `SELECT * FROM health_metrics WHERE patient_id = $1 ORDER BY recorded_at DESC`
	var metrics []*model.HealthMetric
	if err := r.db.SelectContext(ctx, &metrics, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list health metrics: %w", err)
	}
	return metrics, nil
}
