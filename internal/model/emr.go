package model

import (
	"time"

	"github.com/google/uuid"
)

// EMR is an electronic medical record. PatientID and DoctorID reference the
// external profile identifiers, not database keys. DoctorID nullifies when the
// authoring doctor's profile is deleted; the record itself cascades with the
// patient.
type EMR struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PatientID     string    `db:"patient_id" json:"patient_id"`
	DoctorID      *string   `db:"doctor_id" json:"doctor_id"`
	Diagnosis     string    `db:"diagnosis" json:"diagnosis,omitempty"`
	TreatmentPlan string    `db:"treatment_plan" json:"treatment_plan,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type CreateEMRRequest struct {
	PatientID     string `json:"patient_id" binding:"required,recordid"`
	Diagnosis     string `json:"diagnosis"`
	TreatmentPlan string `json:"treatment_plan"`
}

// LabResult belongs to an EMR and shares its visibility.
type LabResult struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	EMRID          uuid.UUID  `db:"emr_id" json:"emr_id"`
	TestName       string     `db:"test_name" json:"test_name"`
	TestDate       *time.Time `db:"test_date" json:"test_date,omitempty"`
	ResultFilePath string     `db:"result_file_path" json:"result_file_path,omitempty"`
	Notes          string     `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

type CreateLabResultRequest struct {
	TestName       string     `json:"test_name" binding:"required"`
	TestDate       *time.Time `json:"test_date"`
	ResultFilePath string     `json:"result_file_path"`
	Notes          string     `json:"notes"`
}
