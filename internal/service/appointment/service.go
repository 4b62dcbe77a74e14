package appointment

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

type Service struct {
	identity     *identity.Service
	appointments repository.AppointmentRepository
}

func NewService(identitySvc *identity.Service, appointments repository.AppointmentRepository) *Service {
	return &Service{identity: identitySvc, appointments: appointments}
}

func (s *Service) ListAppointments(ctx context.Context, userID uuid.UUID) ([]*model.Appointment, error) {
	role, err := s.identity.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	scope := access.ReadScope(role, access.ResourceAppointment)
	switch {
	case scope.PatientID != "":
		return s.appointments.ListByPatient(ctx, scope.PatientID)
	case scope.DoctorID != "":
		return s.appointments.ListByDoctor(ctx, scope.DoctorID)
	}
	return []*model.Appointment{}, nil
}

// CreateAppointment is patient-only. The requesting patient is always the
// appointment's subject and the status always starts as Requested.
func (s *Service) CreateAppointment(ctx context.Context, userID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	role, err := s.identity.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireCreate(role, access.ResourceAppointment); err != nil {
		return nil, err
	}

	appointment := &model.Appointment{
		ID:                  uuid.New(),
		PatientID:           role.PatientID(),
		DoctorID:            req.DoctorID,
		AppointmentDatetime: req.AppointmentDatetime,
		Status:              model.AppointmentStatusRequested,
		Notes:               req.Notes,
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, apperror.NotFound("doctor")
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appointment, nil
}

// UpdateStatus transitions an appointment. Only the two participants may do
// so: the doctor can approve, reschedule or cancel, the patient can cancel.
// Non-participants get NotFound so the appointment's existence stays hidden.
func (s *Service) UpdateStatus(ctx context.Context, userID, appointmentID uuid.UUID, req *model.UpdateAppointmentStatusRequest) (*model.Appointment, error) {
	appointment, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("appointment")
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	role, err := s.identity.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	doctorID := appointment.DoctorID
	if !access.ReadScope(role, access.ResourceAppointment).Covers(appointment.PatientID, &doctorID) {
		return nil, apperror.NotFound("appointment")
	}

	if role.IsPatient() && req.Status != model.AppointmentStatusCancelled {
		return nil, apperror.PermissionDenied("patients can only cancel appointments")
	}

	notes := appointment.Notes
	if req.Notes != "" {
		notes = req.Notes
	}

	if err := s.appointments.UpdateStatus(ctx, appointmentID, req.Status, notes); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("appointment")
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	appointment.Status = req.Status
	appointment.Notes = notes
	return appointment, nil
}
