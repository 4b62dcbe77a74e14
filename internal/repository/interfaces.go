package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/healthbridge/records-api/internal/model"
)

// Store-level sentinel errors. Postgres repositories translate driver errors
// into these so services can map them onto the HTTP error taxonomy.
var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateIdentifier is a uniqueness violation on a generated
	// PAT-/DOC- identifier; callers regenerate and retry.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	// ErrProfileExists is a uniqueness violation on a profile's user link.
	ErrProfileExists = errors.New("profile already exists for user")
	// ErrDuplicateUsername is a uniqueness violation on users.username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrMissingReference is a foreign key violation: the referenced
	// patient, doctor, EMR or conversation no longer exists.
	ErrMissingReference = errors.New("referenced record does not exist")
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
		// FilterExisting returns the subset of ids that resolve to users.
		FilterExisting(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	}

	// ProfileRepository is the identity directory store. Creates run the
	// cross-table duplicate check and the insert in one transaction.
	ProfileRepository interface {
		CreatePatient(ctx context.Context, profile *model.PatientProfile) error
		CreateDoctor(ctx context.Context, profile *model.DoctorProfile) error
		GetPatientByUserID(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error)
		GetDoctorByUserID(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error)
		GetPatientByPatientID(ctx context.Context, patientID string) (*model.PatientProfile, error)
		GetDoctorByDoctorID(ctx context.Context, doctorID string) (*model.DoctorProfile, error)
		ListPatients(ctx context.Context) ([]*model.PatientProfile, error)
		ListDoctors(ctx context.Context) ([]*model.DoctorProfile, error)
	}

	EMRRepository interface {
		Create(ctx context.Context, emr *model.EMR) error
		Get(ctx context.Context, id uuid.UUID) (*model.EMR, error)
		ListByPatient(ctx context.Context, patientID string) ([]*model.EMR, error)
		ListByDoctor(ctx context.Context, doctorID string) ([]*model.EMR, error)
	}

	LabResultRepository interface {
		Create(ctx context.Context, result *model.LabResult) error
		ListByEMR(ctx context.Context, emrID uuid.UUID) ([]*model.LabResult, error)
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, prescription *model.Prescription) error
		// Get joins in the patient and doctor display names.
		Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
		ListByPatient(ctx context.Context, patientID string) ([]*model.Prescription, error)
		ListByDoctor(ctx context.Context, doctorID string) ([]*model.Prescription, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		ListByPatient(ctx context.Context, patientID string) ([]*model.Appointment, error)
		ListByDoctor(ctx context.Context, doctorID string) ([]*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, notes string) error
	}

	HealthMetricRepository interface {
		Create(ctx context.Context, metric *model.HealthMetric) error
		ListByPatient(ctx context.Context, patientID string) ([]*model.HealthMetric, error)
	}

	ConversationRepository interface {
		// Create inserts the conversation and its participant rows in one
		// transaction.
		Create(ctx context.Context, conversation *model.Conversation, participantIDs []uuid.UUID) error
		Get(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
		ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error)
		IsParticipant(ctx context.Context, conversationID, userID uuid.UUID) (bool, error)
		Touch(ctx context.Context, conversationID uuid.UUID, at time.Time) error
	}

	MessageRepository interface {
		Create(ctx context.Context, message *model.Message) error
		ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*model.Message, error)
	}

	// TokenRepository is the revoked-token denylist.
	TokenRepository interface {
		Deny(ctx context.Context, tokenID string, until time.Time) error
		IsDenied(ctx context.Context, tokenID string) (bool, error)
	}
)
