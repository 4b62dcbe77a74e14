package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusRequested   AppointmentStatus = "Requested"
	AppointmentStatusApproved    AppointmentStatus = "Approved"
	AppointmentStatusRescheduled AppointmentStatus = "Rescheduled"
	AppointmentStatusCancelled   AppointmentStatus = "Cancelled"
)

type Appointment struct {
	ID                  uuid.UUID         `db:"id" json:"id"`
	PatientID           string            `db:"patient_id" json:"patient_id"`
	DoctorID            string            `db:"doctor_id" json:"doctor_id"`
	AppointmentDatetime time.Time         `db:"appointment_datetime" json:"appointment_datetime"`
	Status              AppointmentStatus `db:"status" json:"status"`
	Notes               string            `db:"notes" json:"notes,omitempty"`
	CreatedAt           time.Time         `db:"created_at" json:"created_at"`
}

// CreateAppointmentRequest carries a patient's appointment request. The
// patient identifier is always taken from the caller's resolved profile.
type CreateAppointmentRequest struct {
	DoctorID            string    `json:"doctor_id" binding:"required,recordid"`
	AppointmentDatetime time.Time `json:"appointment_datetime" binding:"required"`
	Notes               string    `json:"notes"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=Approved Rescheduled Cancelled"`
	Notes  string            `json:"notes"`
}
