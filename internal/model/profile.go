package model

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// PatientProfile extends a user with the patient role. PatientID is the
// durable external identifier (PAT-XXXXXXXX) that clinical records reference.
type PatientProfile struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	UserID             uuid.UUID  `db:"user_id" json:"user_id"`
	PatientID          string     `db:"patient_id" json:"patient_id"`
	FullName           string     `db:"full_name" json:"full_name"`
	DateOfBirth        *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender             string     `db:"gender" json:"gender,omitempty"`
	Phone              string     `db:"phone" json:"phone,omitempty"`
	Address            string     `db:"address" json:"address,omitempty"`
	Allergies          string     `db:"allergies" json:"allergies,omitempty"`
	ExistingConditions string     `db:"existing_conditions" json:"existing_conditions,omitempty"`
	Medications        string     `db:"medications" json:"medications,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}

// DoctorProfile extends a user with the doctor role.
type DoctorProfile struct {
	ID             uuid.UUID `db:"id" json:"id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	DoctorID       string    `db:"doctor_id" json:"doctor_id"`
	FullName       string    `db:"full_name" json:"full_name"`
	Specialization string    `db:"specialization" json:"specialization,omitempty"`
	Phone          string    `db:"phone" json:"phone,omitempty"`
	OfficeAddress  string    `db:"office_address" json:"office_address,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type CreatePatientProfileRequest struct {
	FullName           string     `json:"full_name" binding:"required"`
	DateOfBirth        *time.Time `json:"date_of_birth"`
	Gender             string     `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	Phone              string     `json:"phone"`
	Address            string     `json:"address"`
	Allergies          string     `json:"allergies"`
	ExistingConditions string     `json:"existing_conditions"`
	Medications        string     `json:"medications"`
}

type CreateDoctorProfileRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
	OfficeAddress  string `json:"office_address"`
}

// ProfileStatus is the response for GET /profile.
type ProfileStatus struct {
	HasProfile bool    `json:"has_profile"`
	Role       *string `json:"role"`
}
