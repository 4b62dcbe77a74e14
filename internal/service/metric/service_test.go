package metric

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/repository"
	"github.com/healthbridge/records-api/internal/service/identity"
	"github.com/healthbridge/records-api/pkg/apperror"
)

type fakeProfileRepo struct {
	patients map[uuid.UUID]*model.PatientProfile
	doctors  map[uuid.UUID]*model.DoctorProfile
}

func (f *fakeProfileRepo) CreatePatient(context.Context, *model.PatientProfile) error { return nil }
func (f *fakeProfileRepo) CreateDoctor(context.Context, *model.DoctorProfile) error   { return nil }

func (f *fakeProfileRepo) GetPatientByUserID(_ context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	if p, ok := f.patients[userID]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProfileRepo) GetDoctorByUserID(_ context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	if d, ok := f.doctors[userID]; ok {
		return d, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProfileRepo) GetPatientByPatientID(context.Context, string) (*model.PatientProfile, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeProfileRepo) GetDoctorByDoctorID(context.Context, string) (*model.DoctorProfile, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeProfileRepo) ListPatients(context.Context) ([]*model.PatientProfile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) ListDoctors(context.Context) ([]*model.DoctorProfile, error) {
	return nil, nil
}

type fakeMetricRepo struct {
	metrics []*model.HealthMetric
}

func (f *fakeMetricRepo) Create(_ context.Context, m *model.HealthMetric) error {
	f.metrics = append(f.metrics, m)
	return nil
}

func (f *fakeMetricRepo) ListByPatient(_ context.Context, patientID string) ([]*model.HealthMetric, error) {
	out := []*model.HealthMetric{}
	for _, m := range f.metrics {
		if m.PatientID == patientID {
			out = append(out, m)
		}
	}
	return out, nil
}

func TestCreateMetricPatientOnly(t *testing.T) {
	profiles := &fakeProfileRepo{
		patients: make(map[uuid.UUID]*model.PatientProfile),
		doctors:  make(map[uuid.UUID]*model.DoctorProfile),
	}
	metrics := &fakeMetricRepo{}
	svc := NewService(identity.NewService(profiles), metrics)
	ctx := context.Background()

	patientUser := uuid.New()
	doctorUser := uuid.New()
	profiles.patients[patientUser] = &model.PatientProfile{UserID: patientUser, PatientID: "PAT-AAAA1111"}
	profiles.doctors[doctorUser] = &model.DoctorProfile{UserID: doctorUser, DoctorID: "DOC-BBBB2222"}

	metric, err := svc.CreateMetric(ctx, patientUser, &model.CreateHealthMetricRequest{
		MetricType: "blood_pressure_systolic",
		Value:      "120",
		Unit:       "mmHg",
	})
	require.NoError(t, err)
	assert.Equal(t, "PAT-AAAA1111", metric.PatientID)

	_, err = svc.CreateMetric(ctx, doctorUser, &model.CreateHealthMetricRequest{
		MetricType: "weight",
		Value:      "80",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))
}

func TestListMetricsScoping(t *testing.T) {
	profiles := &fakeProfileRepo{
		patients: make(map[uuid.UUID]*model.PatientProfile),
		doctors:  make(map[uuid.UUID]*model.DoctorProfile),
	}
	metrics := &fakeMetricRepo{metrics: []*model.HealthMetric{
		{ID: uuid.New(), PatientID: "PAT-AAAA1111", MetricType: "weight", Value: "70"},
		{ID: uuid.New(), PatientID: "PAT-ZZZZ9999", MetricType: "weight", Value: "90"},
	}}
	svc := NewService(identity.NewService(profiles), metrics)
	ctx := context.Background()

	patientUser := uuid.New()
	doctorUser := uuid.New()
	profiles.patients[patientUser] = &model.PatientProfile{UserID: patientUser, PatientID: "PAT-AAAA1111"}
	profiles.doctors[doctorUser] = &model.DoctorProfile{UserID: doctorUser, DoctorID: "DOC-BBBB2222"}

	own, err := svc.ListMetrics(ctx, patientUser)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	// Doctors have no metric scope at all.
	fromDoctor, err := svc.ListMetrics(ctx, doctorUser)
	require.NoError(t, err)
	assert.Empty(t, fromDoctor)
}
