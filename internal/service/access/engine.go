package access

import (
	"github.com/healthbridge/records-api/internal/service/identity"
	"github.com/healthbridge/records-api/pkg/apperror"
)

// Resource enumerates the protected resource types.
type Resource string

const (
	ResourcePatientProfile Resource = "patient_profile"
	ResourceDoctorProfile  Resource = "doctor_profile"
	ResourceAppointment    Resource = "appointment"
	ResourceEMR            Resource = "emr"
	ResourcePrescription   Resource = "prescription"
	ResourceLabResult      Resource = "lab_result"
	ResourceHealthMetric   Resource = "health_metric"
)

// Scope is the visibility filter computed for a (role, resource) pair.
// At most one of the fields is meaningful: a patient identifier restriction,
// a doctor identifier restriction, universal read, or nothing visible.
type Scope struct {
	PatientID string
	DoctorID  string
	Universal bool
	Empty     bool
}

// Covers reports whether a record with the given owner identifiers falls
// inside the scope. doctorID may be nil for records whose doctor link was
// nullified.
func (s Scope) Covers(patientID string, doctorID *string) bool {
	switch {
	case s.Universal:
		return true
	case s.Empty:
		return false
	case s.PatientID != "":
		return s.PatientID == patientID
	case s.DoctorID != "":
		return doctorID != nil && s.DoctorID == *doctorID
	}
	return false
}

// ReadScope computes the visibility filter for listing or reading records of
// a resource type. A role without access yields an empty scope, never an
// error: list-type authorization failures degrade to empty result sets.
func ReadScope(role identity.Role, resource Resource) Scope {
	switch resource {
	case ResourcePatientProfile:
		// Self only. Doctors use the separate directory listing endpoint.
		if role.IsPatient() {
			return Scope{PatientID: role.PatientID()}
		}
		return Scope{Empty: true}

	case ResourceDoctorProfile:
		return Scope{Universal: true}

	case ResourceAppointment, ResourceEMR, ResourcePrescription, ResourceLabResult:
		switch role.Kind {
		case identity.RolePatient:
			return Scope{PatientID: role.PatientID()}
		case identity.RoleDoctor:
			return Scope{DoctorID: role.DoctorID()}
		}
		return Scope{Empty: true}

	case ResourceHealthMetric:
		// Patient-owned, like the other clinical records.
		if role.IsPatient() {
			return Scope{PatientID: role.PatientID()}
		}
		return Scope{Empty: true}
	}

	return Scope{Empty: true}
}

// RequireCreate checks the mutation predicate for creating records of the
// given resource type. The owning identifier of the created record is always
// taken from the resolved role, never from the request payload.
func RequireCreate(role identity.Role, resource Resource) error {
	switch resource {
	case ResourceAppointment:
		if !role.IsPatient() {
			return apperror.PermissionDenied("only patients can create appointments")
		}
	case ResourceEMR:
		if !role.IsDoctor() {
			return apperror.PermissionDenied("only doctors can create EMRs")
		}
	case ResourcePrescription:
		if !role.IsDoctor() {
			return apperror.PermissionDenied("only doctors can create prescriptions")
		}
	case ResourceLabResult:
		if !role.IsDoctor() {
			return apperror.PermissionDenied("only doctors can create lab results")
		}
	case ResourceHealthMetric:
		if !role.IsPatient() {
			return apperror.PermissionDenied("only patients can record health metrics")
		}
	default:
		return apperror.PermissionDenied("create is not permitted for this resource")
	}
	return nil
}
