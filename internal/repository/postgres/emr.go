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

type emrRepository struct {
	db *sqlx.DB
}

func NewEMRRepository(db *sqlx.DB) repository.EMRRepository {
	return &emrRepository{db: db}
}

func (r *emrRepository) Create(ctx context.Context, emr *model.EMR) error {
	query := `
		INSERT INTO emrs (id, patient_id, doctor_id, diagnosis, treatment_plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	emr.CreatedAt = time.Now()
	emr.UpdatedAt = emr.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		emr.ID,
		emr.PatientID,
		emr.DoctorID,
		emr.Diagnosis,
		emr.TreatmentPlan,
		emr.CreatedAt,
		emr.UpdatedAt,
	)
	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to create EMR: %w", err)
	}
	return nil
}

func (r *emrRepository) Get(ctx context.Context, id uuid.UUID) (*model.EMR, error) {
	query := `SELECT * FROM emrs WHERE id = $1`
	var emr model.EMR
	if err := r.db.GetContext(ctx, &emr, query, id); err != nil {
		return nil, translateError(err)
	}
	return &emr, nil
}

func (r *emrRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.EMR, error) {
	query := `SELECT * FROM emrs WHERE patient_id = $1 ORDER BY created_at DESC`
	var emrs []*model.EMR
	if err := r.db.SelectContext(ctx, &emrs, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list EMRs: %w", err)
	}
	return emrs, nil
}

func (r *emrRepository) ListByDoctor(ctx context.Context, doctorID string) ([]*model.EMR, error) {
	query := `SELECT * FROM emrs WHERE doctor_id = $1 ORDER BY created_at DESC`
	var emrs []*model.EMR
	if err := r.db.SelectContext(ctx, &emrs, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list EMRs: %w", err)
	}
	return emrs, nil
}
