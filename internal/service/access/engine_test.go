package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/service/identity"
)

func patientRole(patientID string) identity.Role {
	return identity.Role{
		Kind:    identity.RolePatient,
		Patient: &model.PatientProfile{PatientID: patientID},
	}
}

func doctorRole(doctorID string) identity.Role {
	return identity.Role{
		Kind:   identity.RoleDoctor,
		Doctor: &model.DoctorProfile{DoctorID: doctorID},
	}
}

func noneRole() identity.Role {
	return identity.Role{Kind: identity.RoleNone}
}

func TestReadScopeClinicalRecords(t *testing.T) {
	for _, resource := range []Resource{ResourceAppointment, ResourceEMR, ResourcePrescription, ResourceLabResult} {
		scope := ReadScope(patientRole("PAT-AAAAAAAA"), resource)
		assert.Equal(t, "PAT-AAAAAAAA", scope.PatientID, string(resource))
		assert.False(t, scope.Empty)

		scope = ReadScope(doctorRole("DOC-BBBBBBBB"), resource)
		assert.Equal(t, "DOC-BBBBBBBB", scope.DoctorID, string(resource))
		assert.False(t, scope.Empty)

		scope = ReadScope(noneRole(), resource)
		assert.True(t, scope.Empty, string(resource))
	}
}

func TestReadScopePatientProfileSelfOnly(t *testing.T) {
	scope := ReadScope(patientRole("PAT-AAAAAAAA"), ResourcePatientProfile)
	assert.Equal(t, "PAT-AAAAAAAA", scope.PatientID)

	assert.True(t, ReadScope(doctorRole("DOC-BBBBBBBB"), ResourcePatientProfile).Empty)
	assert.True(t, ReadScope(noneRole(), ResourcePatientProfile).Empty)
}

func TestReadScopeDoctorProfileUniversal(t *testing.T) {
	assert.True(t, ReadScope(patientRole("PAT-AAAAAAAA"), ResourceDoctorProfile).Universal)
	assert.True(t, ReadScope(doctorRole("DOC-BBBBBBBB"), ResourceDoctorProfile).Universal)
	assert.True(t, ReadScope(noneRole(), ResourceDoctorProfile).Universal)
}

func TestReadScopeHealthMetricPatientOwned(t *testing.T) {
	scope := ReadScope(patientRole("PAT-AAAAAAAA"), ResourceHealthMetric)
	assert.Equal(t, "PAT-AAAAAAAA", scope.PatientID)

	assert.True(t, ReadScope(doctorRole("DOC-BBBBBBBB"), ResourceHealthMetric).Empty)
	assert.True(t, ReadScope(noneRole(), ResourceHealthMetric).Empty)
}

func TestRequireCreate(t *testing.T) {
	cases := []struct {
		name     string
		role     identity.Role
		resource Resource
		allowed  bool
	}{
		{"patient creates appointment", patientRole("PAT-AAAAAAAA"), ResourceAppointment, true},
		{"doctor creates appointment", doctorRole("DOC-BBBBBBBB"), ResourceAppointment, false},
		{"none creates appointment", noneRole(), ResourceAppointment, false},
		{"doctor creates emr", doctorRole("DOC-BBBBBBBB"), ResourceEMR, true},
		{"patient creates emr", patientRole("PAT-AAAAAAAA"), ResourceEMR, false},
		{"doctor creates prescription", doctorRole("DOC-BBBBBBBB"), ResourcePrescription, true},
		{"patient creates prescription", patientRole("PAT-AAAAAAAA"), ResourcePrescription, false},
		{"doctor creates lab result", doctorRole("DOC-BBBBBBBB"), ResourceLabResult, true},
		{"patient creates lab result", patientRole("PAT-AAAAAAAA"), ResourceLabResult, false},
		{"patient records metric", patientRole("PAT-AAAAAAAA"), ResourceHealthMetric, true},
		{"doctor records metric", doctorRole("DOC-BBBBBBBB"), ResourceHealthMetric, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := RequireCreate(tc.role, tc.resource)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestScopeCovers(t *testing.T) {
	doctorID := "DOC-BBBBBBBB"

	assert.True(t, Scope{PatientID: "PAT-AAAAAAAA"}.Covers("PAT-AAAAAAAA", &doctorID))
	assert.False(t, Scope{PatientID: "PAT-AAAAAAAA"}.Covers("PAT-CCCCCCCC", &doctorID))
	assert.True(t, Scope{DoctorID: doctorID}.Covers("PAT-AAAAAAAA", &doctorID))
	assert.False(t, Scope{DoctorID: doctorID}.Covers("PAT-AAAAAAAA", nil))
	assert.True(t, Scope{Universal: true}.Covers("PAT-AAAAAAAA", nil))
	assert.False(t, Scope{Empty: true}.Covers("PAT-AAAAAAAA", &doctorID))
}
