package record

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

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		patients: make(map[uuid.UUID]*model.PatientProfile),
		doctors:  make(map[uuid.UUID]*model.DoctorProfile),
	}
}

func (f *fakeProfileRepo) CreatePatient(context.Context, *model.PatientProfile) error {
	return nil
}

func (f *fakeProfileRepo) CreateDoctor(context.Context, *model.DoctorProfile) error {
	return nil
}

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

type fakeEMRRepo struct {
	emrs map[uuid.UUID]*model.EMR
}

func newFakeEMRRepo() *fakeEMRRepo {
	return &fakeEMRRepo{emrs: make(map[uuid.UUID]*model.EMR)}
}

func (f *fakeEMRRepo) Create(_ context.Context, emr *model.EMR) error {
	f.emrs[emr.ID] = emr
	return nil
}

func (f *fakeEMRRepo) Get(_ context.Context, id uuid.UUID) (*model.EMR, error) {
	if emr, ok := f.emrs[id]; ok {
		return emr, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeEMRRepo) ListByPatient(_ context.Context, patientID string) ([]*model.EMR, error) {
	out := []*model.EMR{}
	for _, emr := range f.emrs {
		if emr.PatientID == patientID {
			out = append(out, emr)
		}
	}
	return out, nil
}

func (f *fakeEMRRepo) ListByDoctor(_ context.Context, doctorID string) ([]*model.EMR, error) {
	out := []*model.EMR{}
	for _, emr := range f.emrs {
		if emr.DoctorID != nil && *emr.DoctorID == doctorID {
			out = append(out, emr)
		}
	}
	return out, nil
}

type fakeLabResultRepo struct {
	results []*model.LabResult
}

func (f *fakeLabResultRepo) Create(_ context.Context, result *model.LabResult) error {
	f.results = append(f.results, result)
	return nil
}

func (f *fakeLabResultRepo) ListByEMR(_ context.Context, emrID uuid.UUID) ([]*model.LabResult, error) {
	out := []*model.LabResult{}
	for _, r := range f.results {
		if r.EMRID == emrID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePrescriptionRepo struct {
	prescriptions map[uuid.UUID]*model.Prescription
}

func newFakePrescriptionRepo() *fakePrescriptionRepo {
	return &fakePrescriptionRepo{prescriptions: make(map[uuid.UUID]*model.Prescription)}
}

func (f *fakePrescriptionRepo) Create(_ context.Context, p *model.Prescription) error {
	f.prescriptions[p.ID] = p
	return nil
}

func (f *fakePrescriptionRepo) Get(_ context.Context, id uuid.UUID) (*model.Prescription, error) {
	if p, ok := f.prescriptions[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakePrescriptionRepo) ListByPatient(_ context.Context, patientID string) ([]*model.Prescription, error) {
	out := []*model.Prescription{}
	for _, p := range f.prescriptions {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePrescriptionRepo) ListByDoctor(_ context.Context, doctorID string) ([]*model.Prescription, error) {
	out := []*model.Prescription{}
	for _, p := range f.prescriptions {
		if p.DoctorID == doctorID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fixture struct {
	svc           *Service
	profiles      *fakeProfileRepo
	emrs          *fakeEMRRepo
	labResults    *fakeLabResultRepo
	prescriptions *fakePrescriptionRepo

	patientUser uuid.UUID
	doctorUser  uuid.UUID
}

func newFixture() *fixture {
	profiles := newFakeProfileRepo()
	emrs := newFakeEMRRepo()
	labResults := &fakeLabResultRepo{}
	prescriptions := newFakePrescriptionRepo()

	f := &fixture{
		svc:           NewService(identity.NewService(profiles), emrs, labResults, prescriptions),
		profiles:      profiles,
		emrs:          emrs,
		labResults:    labResults,
		prescriptions: prescriptions,
		patientUser:   uuid.New(),
		doctorUser:    uuid.New(),
	}
	profiles.patients[f.patientUser] = &model.PatientProfile{
		UserID: f.patientUser, PatientID: "PAT-AAAA1111", FullName: "Jane Roe",
	}
	profiles.doctors[f.doctorUser] = &model.DoctorProfile{
		UserID: f.doctorUser, DoctorID: "DOC-BBBB2222", FullName: "Gregory House",
	}
	return f
}

func TestCreateEMRAssignsAuthoringDoctor(t *testing.T) {
	f := newFixture()

	emr, err := f.svc.CreateEMR(context.Background(), f.doctorUser, &model.CreateEMRRequest{
		PatientID: "PAT-AAAA1111",
		Diagnosis: "hypertension",
	})
	require.NoError(t, err)
	require.NotNil(t, emr.DoctorID)
	assert.Equal(t, "DOC-BBBB2222", *emr.DoctorID)
	assert.Equal(t, "PAT-AAAA1111", emr.PatientID)
}

func TestCreateEMRPatientDenied(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateEMR(context.Background(), f.patientUser, &model.CreateEMRRequest{
		PatientID: "PAT-AAAA1111",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))
}

func TestListEMRsScoping(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doctorID := "DOC-BBBB2222"
	f.emrs.emrs[uuid.New()] = &model.EMR{ID: uuid.New(), PatientID: "PAT-AAAA1111", DoctorID: &doctorID}
	f.emrs.emrs[uuid.New()] = &model.EMR{ID: uuid.New(), PatientID: "PAT-ZZZZ9999", DoctorID: &doctorID}

	own, err := f.svc.ListEMRs(ctx, f.patientUser)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	authored, err := f.svc.ListEMRs(ctx, f.doctorUser)
	require.NoError(t, err)
	assert.Len(t, authored, 2)

	// A user without any profile sees nothing rather than an error.
	none, err := f.svc.ListEMRs(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListLabResultsHiddenOutsideScope(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	otherDoctor := "DOC-XXXX0000"
	emrID := uuid.New()
	f.emrs.emrs[emrID] = &model.EMR{ID: emrID, PatientID: "PAT-ZZZZ9999", DoctorID: &otherDoctor}
	f.labResults.results = append(f.labResults.results, &model.LabResult{ID: uuid.New(), EMRID: emrID, TestName: "CBC"})

	results, err := f.svc.ListLabResults(ctx, f.patientUser, emrID)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = f.svc.ListLabResults(ctx, f.patientUser, uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestCreateLabResultRequiresOwnEMR(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	otherDoctor := "DOC-XXXX0000"
	foreign := uuid.New()
	f.emrs.emrs[foreign] = &model.EMR{ID: foreign, PatientID: "PAT-ZZZZ9999", DoctorID: &otherDoctor}

	_, err := f.svc.CreateLabResult(ctx, f.doctorUser, foreign, &model.CreateLabResultRequest{TestName: "CBC"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))

	doctorID := "DOC-BBBB2222"
	own := uuid.New()
	f.emrs.emrs[own] = &model.EMR{ID: own, PatientID: "PAT-AAAA1111", DoctorID: &doctorID}

	result, err := f.svc.CreateLabResult(ctx, f.doctorUser, own, &model.CreateLabResultRequest{TestName: "CBC"})
	require.NoError(t, err)
	assert.Equal(t, own, result.EMRID)
}

func TestCreatePrescriptionAssignsPrescriber(t *testing.T) {
	f := newFixture()

	prescription, err := f.svc.CreatePrescription(context.Background(), f.doctorUser, &model.CreatePrescriptionRequest{
		PatientID:      "PAT-AAAA1111",
		MedicationName: "Lisinopril",
		Dosage:         "10mg",
	})
	require.NoError(t, err)
	assert.Equal(t, "DOC-BBBB2222", prescription.DoctorID)

	_, err = f.svc.CreatePrescription(context.Background(), f.patientUser, &model.CreatePrescriptionRequest{
		PatientID:      "PAT-AAAA1111",
		MedicationName: "Lisinopril",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))
}

func TestGetPrescriptionForDownloadOwnerOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	id := uuid.New()
	f.prescriptions.prescriptions[id] = &model.Prescription{
		ID: id, PatientID: "PAT-AAAA1111", DoctorID: "DOC-BBBB2222",
	}

	prescription, err := f.svc.GetPrescriptionForDownload(ctx, f.patientUser, id)
	require.NoError(t, err)
	assert.Equal(t, id, prescription.ID)

	// The prescribing doctor still may not download the patient's copy.
	_, err = f.svc.GetPrescriptionForDownload(ctx, f.doctorUser, id)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))

	_, err = f.svc.GetPrescriptionForDownload(ctx, f.patientUser, uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}
