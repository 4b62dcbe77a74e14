package metric

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/repository"
	"github.com/healthbridge/records-api/internal/service/access"
	"github.com/healthbridge/records-api/internal/service/identity"
	"github.com/healthbridge/records-api/pkg/apperror"
)

// Service handles patient-recorded health metrics.
type Service struct {
	identity *identity.Service
	metrics  repository.HealthMetricRepository
}

func NewService(identitySvc *identity.Service, metrics repository.HealthMetricRepository) *Service {
	return &Service{identity: identitySvc, metrics: metrics}
}

func (s *Service) ListMetrics(ctx context.Context, userID uuid.UUID) ([]*model.HealthMetric, error) {
	role, err := s.identity.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	scope := access.ReadScope(role, access.ResourceHealthMetric)
	if scope.PatientID != "" {
		return s.metrics.ListByPatient(ctx, scope.PatientID)
	}
	return []*model.HealthMetric{}, nil
}

func (s *Service) CreateMetric(ctx context.Context, userID uuid.UUID, req *model.CreateHealthMetricRequest) (*model.HealthMetric, error) {
	role, err := s.identity.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireCreate(role, access.ResourceHealthMetric); err != nil {
		return nil, err
	}

	metric := &model.HealthMetric{
		ID:         uuid.New(),
		PatientID:  role.PatientID(),
		MetricType: req.MetricType,
		Value:      req.Value,
		Unit:       req.Unit,
	}

	if err := s.metrics.Create(ctx, metric); err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, apperror.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to create health metric: %w", err)
	}
	return metric, nil
}
