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

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (id, patient_id, doctor_id, appointment_datetime, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	appointment.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.AppointmentDatetime,
		appointment.Status,
		appointment.Notes,
		appointment.CreatedAt,
	)
	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE id = $1`
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, translateError(err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE patient_id = $1 ORDER BY appointment_datetime`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE doctor_id = $1 ORDER BY appointment_datetime`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, notes string) error {
	query := `UPDATE appointments SET status = $1, notes = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, notes, id)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
