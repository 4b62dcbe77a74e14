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

type prescriptionRepository struct {
	db *sqlx.DB
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

const prescriptionColumns = `
	p.id, p.patient_id, p.doctor_id, p.medication_name, p.dosage,
	p.instructions, p.created_at,
	pp.full_name AS patient_name,
	dp.full_name AS doctor_name
`

const prescriptionJoins = `
	FROM prescriptions p
	JOIN patient_profiles pp ON pp.patient_id = p.patient_id
	JOIN doctor_profiles dp ON dp.doctor_id = p.doctor_id
`

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (id, patient_id, doctor_id, medication_name, dosage, instructions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	prescription.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		prescription.ID,
		prescription.PatientID,
		prescription.DoctorID,
		prescription.MedicationName,
		prescription.Dosage,
		prescription.Instructions,
		prescription.CreatedAt,
	)
	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + prescriptionJoins + ` WHERE p.id = $1`
	var prescription model.Prescription
	if err := r.db.GetContext(ctx, &prescription, query, id); err != nil {
		return nil, translateError(err)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + prescriptionJoins + `
		WHERE p.patient_id = $1 ORDER BY p.created_at DESC`
	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByDoctor(ctx context.Context, doctorID string) ([]*model.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + prescriptionJoins + `
		WHERE p.doctor_id = $1 ORDER BY p.created_at DESC`
	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}
