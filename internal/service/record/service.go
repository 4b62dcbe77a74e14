package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/repository"
	"github.com/healthbridge/records-api/internal/service/access"
	"github.com/healthbridge/records-api/internal/service/identity"
	"github.com/healthbridge/records-api/pkg/apperror"
)

// Service covers EMRs, lab results and prescriptions. Every operation
// resolves the caller's role, asks the access engine for the applicable
// predicate, and only then touches the store.
type Service struct {
	identity      *identity.Service
	emrs          repository.EMRRepository
	labResults    repository.LabResultRepository
	prescriptions repository.PrescriptionRepository
}

func NewService(identitySvc *identity.Service, emrs repository.EMRRepository,
	labResults repository.LabResultRepository, prescriptions repository.PrescriptionRepository) *Service {
	return &Service{
		identity:      identitySvc,
		emrs:          emrs,
		labResults:    labResults,
		prescriptions: prescriptions,
	}
}

func (s *Service) ListEMRs(ctx context.Context, userID uuid.UUID) ([]*model.EMR, error) {
	role, err := s.identity.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	scope := access.ReadScope(role, access.ResourceEMR)
	switch {
	case scope.PatientID != "":
		return s.emrs.ListByPatient(ctx, scope.PatientID)
	case scope.DoctorID != "":
		return s.emrs.ListByDoctor(ctx, scope.DoctorID)
	}
	return []*model.EMR{}, nil
}

// CreateEMR is doctor-only; the authoring doctor identifier always comes from
// the resolved role, never from the payload.
func (s *Service) CreateEMR(ctx context.Context, userID uuid.UUID, req *model.CreateEMRRequest) (*model.EMR, error) {
	role, err := s.identity.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireCreate(role, access.ResourceEMR); err != nil {
		return nil, err
	}

	doctorID := role.DoctorID()
	emr := &model.EMR{
		ID:            uuid.New(),
		PatientID:     req.PatientID,
		DoctorID:      &doctorID,
		Diagnosis:     req.Diagnosis,
		TreatmentPlan: req.TreatmentPlan,
	}

	if err := s.emrs.Create(ctx, emr); err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, apperror.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to create EMR: %w", err)
	}
	return emr, nil
}

// ListLabResults inherits the parent EMR's visibility: a caller who cannot
// see the EMR gets an empty list, not an error.
func (s *Service) ListLabResults(ctx context.Context, userID, emrID uuid.UUID) ([]*model.LabResult, error) {
	emr, err := s.emrs.Get(ctx, emrID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("EMR")
		}
		return nil, fmt.Errorf("failed to get EMR: %w", err)
	}

	role, err := s.identity.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !access.ReadScope(role, access.ResourceEMR).Covers(emr.PatientID, emr.DoctorID) {
		return []*model.LabResult{}, nil
	}

	return s.labResults.ListByEMR(ctx, emrID)
}

func (s *Service) CreateLabResult(ctx context.Context, userID, emrID uuid.UUID, req *model.CreateLabResultRequest) (*model.LabResult, error) {
	role, err := s.identity.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireCreate(role, access.ResourceLabResult); err != nil {
		return nil, err
	}

	emr, err := s.emrs.Get(ctx, emrID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("EMR")
		}
		return nil, fmt.Errorf("failed to get EMR: %w", err)
	}
	if !access.ReadScope(role, access.ResourceEMR).Covers(emr.PatientID, emr.DoctorID) {
		return nil, apperror.PermissionDenied("lab results can only be added to your own EMRs")
	}

	result := &model.LabResult{
		ID:             uuid.New(),
		EMRID:          emrID,
		TestName:       req.TestName,
		TestDate:       req.TestDate,
		ResultFilePath: req.ResultFilePath,
		Notes:          req.Notes,
	}
	if err := s.labResults.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to create lab result: %w", err)
	}
	return result, nil
}

// ListPrescriptions returns the caller's prescriptions, newest first.
func (s *Service) ListPrescriptions(ctx context.Context, userID uuid.UUID) ([]*model.Prescription, error) {
	role, err := s.identity.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	scope := access.ReadScope(role, access.ResourcePrescription)
	switch {
	case scope.PatientID != "":
		return s.prescriptions.ListByPatient(ctx, scope.PatientID)
	case scope.DoctorID != "":
		return s.prescriptions.ListByDoctor(ctx, scope.DoctorID)
	}
	return []*model.Prescription{}, nil
}

func (s *Service) CreatePrescription(ctx context.Context, userID uuid.UUID, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	role, err := s.identity.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireCreate(role, access.ResourcePrescription); err != nil {
		return nil, err
	}

	prescription := &model.Prescription{
		ID:             uuid.New(),
		PatientID:      req.PatientID,
		DoctorID:       role.DoctorID(),
		MedicationName: req.MedicationName,
		Dosage:         req.Dosage,
		Instructions:   req.Instructions,
	}

	if err := s.prescriptions.Create(ctx, prescription); err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, apperror.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}
	return prescription, nil
}

// GetPrescriptionForDownload authorizes the PDF export: only the patient the
// prescription belongs to may download it. Authorization happens here,
// strictly before the export collaborator is invoked.
func (s *Service) GetPrescriptionForDownload(ctx context.Context, userID, prescriptionID uuid.UUID) (*model.Prescription, error) {
	prescription, err := s.prescriptions.Get(ctx, prescriptionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("prescription")
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}

	role, err := s.identity.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !role.IsPatient() || role.PatientID() != prescription.PatientID {
		return nil, apperror.PermissionDenied("you do not have access to this prescription")
	}
	return prescription, nil
}
