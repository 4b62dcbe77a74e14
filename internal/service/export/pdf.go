package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/healthbridge/records-api/internal/model"
)

// Service renders already-authorized records into downloadable documents.
// It performs no authorization of its own; callers must have passed the
// prescription read check first.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// RenderPrescription renders the prescription as a PDF and returns the bytes
// together with the download filename.
func (s *Service) RenderPrescription(prescription *model.Prescription) ([]byte, string, error) {
	pdf := gofpdf.New("P", "in", "Letter", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)

	pdf.Text(1, 1, fmt.Sprintf("Prescription for: %s", prescription.PatientName))
	pdf.Text(1, 1.25, fmt.Sprintf("Prescribed by: Dr. %s", prescription.DoctorName))
	pdf.Text(1, 1.5, fmt.Sprintf("Date: %s", prescription.CreatedAt.Format("2006-01-02")))
	pdf.Line(1, 1.6, 7.5, 1.6)

	pdf.Text(1, 2, fmt.Sprintf("Medication: %s", prescription.MedicationName))
	pdf.Text(1, 2.25, fmt.Sprintf("Dosage: %s", prescription.Dosage))
	pdf.Text(1, 2.5, fmt.Sprintf("Instructions: %s", prescription.Instructions))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render prescription PDF: %w", err)
	}

	filename := fmt.Sprintf("prescription_%s.pdf", prescription.ID)
	return buf.Bytes(), filename, nil
}
