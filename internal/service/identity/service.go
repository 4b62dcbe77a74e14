package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/repository"
	"github.com/healthbridge/records-api/pkg/apperror"
	"github.com/healthbridge/records-api/pkg/identifier"
)

// Service is the identity directory: it maps an authenticated user to its
// role profile and owns profile creation, including identifier allocation.
type Service struct {
	profiles repository.ProfileRepository
}

func NewService(profiles repository.ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

// ResolveRole looks up the user's role profile, one lookup per profile type.
// A user with neither profile resolves to RoleNone; that is not an error.
func (s *Service) ResolveRole(ctx context.Context, userID uuid.UUID) (Role, error) {
	patient, err := s.profiles.GetPatientByUserID(ctx, userID)
	if err == nil {
		return Role{Kind: RolePatient, Patient: patient}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return Role{}, fmt.Errorf("failed to resolve patient profile: %w", err)
	}

	doctor, err := s.profiles.GetDoctorByUserID(ctx, userID)
	if err == nil {
		return Role{Kind: RoleDoctor, Doctor: doctor}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return Role{}, fmt.Errorf("failed to resolve doctor profile: %w", err)
	}

	return Role{Kind: RoleNone}, nil
}

// CreatePatientProfile creates the patient profile for a user that holds no
// profile yet. Identifier collisions are retried against the store's
// uniqueness constraint a bounded number of times.
func (s *Service) CreatePatientProfile(ctx context.Context, userID uuid.UUID, req *model.CreatePatientProfileRequest) (*model.PatientProfile, error) {
	var lastErr error
	for attempt := 0; attempt < identifier.MaxAttempts; attempt++ {
		profile := &model.PatientProfile{
			ID:                 uuid.New(),
			UserID:             userID,
			PatientID:          identifier.New(identifier.PrefixPatient),
			FullName:           req.FullName,
			DateOfBirth:        req.DateOfBirth,
			Gender:             req.Gender,
			Phone:              req.Phone,
			Address:            req.Address,
			Allergies:          req.Allergies,
			ExistingConditions: req.ExistingConditions,
			Medications:        req.Medications,
		}

		err := s.profiles.CreatePatient(ctx, profile)
		if err == nil {
			return profile, nil
		}
		if errors.Is(err, repository.ErrProfileExists) {
			return nil, apperror.Validation("a profile already exists for this user")
		}
		if errors.Is(err, repository.ErrDuplicateIdentifier) {
			log.Warn().Str("patient_id", profile.PatientID).Msg("identifier collision, regenerating")
			lastErr = err
			continue
		}
		return nil, fmt.Errorf("failed to create patient profile: %w", err)
	}
	return nil, apperror.IdentifierExhausted(identifier.PrefixPatient, lastErr)
}

// CreateDoctorProfile is the doctor counterpart of CreatePatientProfile.
func (s *Service) CreateDoctorProfile(ctx context.Context, userID uuid.UUID, req *model.CreateDoctorProfileRequest) (*model.DoctorProfile, error) {
	var lastErr error
	for attempt := 0; attempt < identifier.MaxAttempts; attempt++ {
		profile := &model.DoctorProfile{
			ID:             uuid.New(),
			UserID:         userID,
			DoctorID:       identifier.New(identifier.PrefixDoctor),
			FullName:       req.FullName,
			Specialization: req.Specialization,
			Phone:          req.Phone,
			OfficeAddress:  req.OfficeAddress,
		}

		err := s.profiles.CreateDoctor(ctx, profile)
		if err == nil {
			return profile, nil
		}
		if errors.Is(err, repository.ErrProfileExists) {
			return nil, apperror.Validation("a profile already exists for this user")
		}
		if errors.Is(err, repository.ErrDuplicateIdentifier) {
			log.Warn().Str("doctor_id", profile.DoctorID).Msg("identifier collision, regenerating")
			lastErr = err
			continue
		}
		return nil, fmt.Errorf("failed to create doctor profile: %w", err)
	}
	return nil, apperror.IdentifierExhausted(identifier.PrefixDoctor, lastErr)
}

// ProfileStatus reports whether the user holds a profile and which role.
func (s *Service) ProfileStatus(ctx context.Context, userID uuid.UUID) (*model.ProfileStatus, error) {
	role, err := s.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := &model.ProfileStatus{}
	switch role.Kind {
	case RolePatient, RoleDoctor:
		status.HasProfile = true
		name := string(role.Kind)
		status.Role = &name
	}
	return status, nil
}

// GetPatient returns the patient profile only to its owning patient; any
// other caller gets NotFound, matching the self-only read policy.
func (s *Service) GetPatient(ctx context.Context, userID uuid.UUID, patientID string) (*model.PatientProfile, error) {
	role, err := s.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !role.IsPatient() || role.PatientID() != patientID {
		return nil, apperror.NotFound("patient")
	}
	return role.Patient, nil
}

// GetDoctor is readable by any authenticated user.
func (s *Service) GetDoctor(ctx context.Context, doctorID string) (*model.DoctorProfile, error) {
	doctor, err := s.profiles.GetDoctorByDoctorID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("doctor")
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return doctor, nil
}

// ListDoctors is the public doctor directory.
func (s *Service) ListDoctors(ctx context.Context) ([]*model.DoctorProfile, error) {
	return s.profiles.ListDoctors(ctx)
}

// ListPatientsForDoctor is the doctor-only read of all patient profiles.
func (s *Service) ListPatientsForDoctor(ctx context.Context, userID uuid.UUID) ([]*model.PatientProfile, error) {
	role, err := s.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !role.IsDoctor() {
		return nil, apperror.PermissionDenied("only doctors can list patients")
	}
	return s.profiles.ListPatients(ctx)
}
