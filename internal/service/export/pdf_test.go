package export

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthbridge/records-api/internal/model"
)

func TestRenderPrescription(t *testing.T) {
	prescription := &model.Prescription{
		ID:             uuid.New(),
		PatientID:      "PAT-AAAA1111",
		DoctorID:       "DOC-BBBB2222",
		MedicationName: "Lisinopril",
		Dosage:         "10mg",
		Instructions:   "once daily",
		CreatedAt:      time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		PatientName:    "Jane Roe",
		DoctorName:     "Gregory House",
	}

	data, filename, err := NewService().RenderPrescription(prescription)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("prescription_%s.pdf", prescription.ID), filename)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}
