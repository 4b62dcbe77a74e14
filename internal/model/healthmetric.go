package model

import (
	"time"

	"github.com/google/uuid"
)

// HealthMetric is a single patient-recorded measurement, e.g.
// metric_type "blood_pressure_systolic", value "120", unit "mmHg".
type HealthMetric struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  string    `db:"patient_id" json:"patient_id"`
	MetricType string    `db:"metric_type" json:"metric_type"`
	Value      string    `db:"value" json:"value"`
	Unit       string    `db:"unit" json:"unit,omitempty"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}

type CreateHealthMetricRequest struct {
	MetricType string `json:"metric_type" binding:"required"`
	Value      string `json:"value" binding:"required"`
	Unit       string `json:"unit"`
}
