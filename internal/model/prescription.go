package model

import (
	"time"

	"github.com/google/uuid"
)

// Prescription references its patient and prescribing doctor by external
// identifier. PatientName and DoctorName are joined in for read responses and
// the PDF export; they are never persisted on the row.
type Prescription struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientID      string    `db:"patient_id" json:"patient_id"`
	DoctorID       string    `db:"doctor_id" json:"doctor_id"`
	MedicationName string    `db:"medication_name" json:"medication_name"`
	Dosage         string    `db:"dosage" json:"dosage,omitempty"`
	Instructions   string    `db:"instructions" json:"instructions,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`

	PatientName string `db:"patient_name" json:"patient_name,omitempty"`
	DoctorName  string `db:"doctor_name" json:"doctor_name,omitempty"`
}

type CreatePrescriptionRequest struct {
	PatientID      string `json:"patient_id" binding:"required,recordid"`
	MedicationName string `json:"medication_name" binding:"required"`
	Dosage         string `json:"dosage"`
	Instructions   string `json:"instructions"`
}
