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

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// CreatePatient checks both profile tables for an existing profile and inserts
// inside one transaction, so a user can never end up with two roles.
func (r *profileRepository) CreatePatient(ctx context.Context, profile *model.PatientProfile) error {
	return r.withProfileTx(ctx, profile.UserID, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO patient_profiles (
				id, user_id, patient_id, full_name, date_of_birth, gender,
				phone, address, allergies, existing_conditions, medications, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`
		profile.CreatedAt = time.Now()

		_, err := tx.ExecContext(ctx, query,
			profile.ID,
			profile.UserID,
			profile.PatientID,
			profile.FullName,
			profile.DateOfBirth,
			profile.Gender,
			profile.Phone,
			profile.Address,
			profile.Allergies,
			profile.ExistingConditions,
			profile.Medications,
			profile.CreatedAt,
		)
		return err
	})
}

func (r *profileRepository) CreateDoctor(ctx context.Context, profile *model.DoctorProfile) error {
	return r.withProfileTx(ctx, profile.UserID, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO doctor_profiles (
				id, user_id, doctor_id, full_name, specialization,
				phone, office_address, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		profile.CreatedAt = time.Now()

		_, err := tx.ExecContext(ctx, query,
			profile.ID,
			profile.UserID,
			profile.DoctorID,
			profile.FullName,
			profile.Specialization,
			profile.Phone,
			profile.OfficeAddress,
			profile.CreatedAt,
		)
		return err
	})
}

// withProfileTx rejects the insert when the user already holds a profile of
// either kind, then runs the insert, all in one transaction.
func (r *profileRepository) withProfileTx(ctx context.Context, userID uuid.UUID, insert func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	query := `
		SELECT (SELECT COUNT(*) FROM patient_profiles WHERE user_id = $1)
		     + (SELECT COUNT(*) FROM doctor_profiles WHERE user_id = $1)
	`
	if err := tx.GetContext(ctx, &count, query, userID); err != nil {
		return fmt.Errorf("failed to check existing profiles: %w", err)
	}
	if count > 0 {
		return repository.ErrProfileExists
	}

	if err := insert(tx); err != nil {
		return translateError(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile: %w", err)
	}
	return nil
}

func (r *profileRepository) GetPatientByUserID(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	query := `SELECT * FROM patient_profiles WHERE user_id = $1`
	var profile model.PatientProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, translateError(err)
	}
	return &profile, nil
}

func (r *profileRepository) GetDoctorByUserID(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	query := `SELECT * FROM doctor_profiles WHERE user_id = $1`
	var profile model.DoctorProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, translateError(err)
	}
	return &profile, nil
}

func (r *profileRepository) GetPatientByPatientID(ctx context.Context, patientID string) (*model.PatientProfile, error) {
	query := `SELECT * FROM patient_profiles WHERE patient_id = $1`
	var profile model.PatientProfile
	if err := r.db.GetContext(ctx, &profile, query, patientID); err != nil {
		return nil, translateError(err)
	}
	return &profile, nil
}

func (r *profileRepository) GetDoctorByDoctorID(ctx context.Context, doctorID string) (*model.DoctorProfile, error) {
	query := `SELECT * FROM doctor_profiles WHERE doctor_id = $1`
	var profile model.DoctorProfile
	if err := r.db.GetContext(ctx, &profile, query, doctorID); err != nil {
		return nil, translateError(err)
	}
	return &profile, nil
}

func (r *profileRepository) ListPatients(ctx context.Context) ([]*model.PatientProfile, error) {
	query := `SELECT * FROM patient_profiles ORDER BY full_name`
	var profiles []*model.PatientProfile
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return profiles, nil
}

func (r *profileRepository) ListDoctors(ctx context.Context) ([]*model.DoctorProfile, error) {
	query := `SELECT * FROM doctor_profiles ORDER BY full_name`
	var profiles []*model.DoctorProfile
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return profiles, nil
}
