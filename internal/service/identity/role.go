package identity

import "github.com/healthbridge/records-api/internal/model"

// RoleKind discriminates the role union.
type RoleKind string

const (
	RoleNone    RoleKind = "none"
	RolePatient RoleKind = "patient"
	RoleDoctor  RoleKind = "doctor"
)

// Role is the resolved role of a principal: exactly one of the profile
// pointers is set for Patient/Doctor, neither for None. It is resolved once
// per request and threaded through authorization decisions instead of
// scattering per-table existence checks.
type Role struct {
	Kind    RoleKind
	Patient *model.PatientProfile
	Doctor  *model.DoctorProfile
}

func (r Role) IsPatient() bool { return r.Kind == RolePatient }
func (r Role) IsDoctor() bool  { return r.Kind == RoleDoctor }
func (r Role) IsNone() bool    { return r.Kind == RoleNone }

// PatientID returns the owned patient identifier, or "" for non-patients.
func (r Role) PatientID() string {
	if r.Kind == RolePatient && r.Patient != nil {
		return r.Patient.PatientID
	}
	return ""
}

// DoctorID returns the owned doctor identifier, or "" for non-doctors.
func (r Role) DoctorID() string {
	if r.Kind == RoleDoctor && r.Doctor != nil {
		return r.Doctor.DoctorID
	}
	return ""
}
