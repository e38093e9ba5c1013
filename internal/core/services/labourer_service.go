package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shopkhata/shopkhata-backend/internal/apperrors"
	"github.com/shopkhata/shopkhata-backend/internal/core/domain"
	portsrepo "github.com/shopkhata/shopkhata-backend/internal/core/ports/repositories"
	portssvc "github.com/shopkhata/shopkhata-backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata-backend/internal/dto"
)

type labourerService struct {
	BaseService
	labourerRepo portsrepo.LabourerRepositoryFacade
}

// NewLabourerService creates the labourer profile service.
func NewLabourerService(labourerRepo portsrepo.LabourerRepositoryFacade) portssvc.LabourerSvcFacade {
	return &labourerService{labourerRepo: labourerRepo}
}

var _ portssvc.LabourerSvcFacade = (*labourerService)(nil)

func (s *labourerService) CreateLabourer(ctx context.Context, creatorUserID string, req dto.CreateLabourerRequest) (*domain.Labourer, error) {
	if req.DefaultDailyWage.IsNegative() {
		return nil, fmt.Errorf("%w: defaultDailyWage must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	labourer := domain.Labourer{
		LabourerID:       uuid.NewString(),
		Name:             req.Name,
		DefaultDailyWage: req.DefaultDailyWage,
		IsDeleted:        false,
		AuditFields:      domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.labourerRepo.SaveLabourer(ctx, labourer); err != nil {
		s.LogError(ctx, err, "failed to save labourer", slog.String("labourer_id", labourer.LabourerID))
		return nil, err
	}

	s.LogInfo(ctx, "labourer created", slog.String("labourer_id", labourer.LabourerID))
	return &labourer, nil
}

func (s *labourerService) GetLabourerByID(ctx context.Context, labourerID string) (*domain.Labourer, error) {
	labourer, err := s.labourerRepo.FindLabourerByID(ctx, labourerID)
	if err != nil {
		return nil, err
	}
	if labourer.IsDeleted {
		return nil, apperrors.ErrNotFound
	}
	return labourer, nil
}

func (s *labourerService) ListLabourers(ctx context.Context) ([]domain.Labourer, error) {
	return s.labourerRepo.ListLabourers(ctx)
}

func (s *labourerService) UpdateLabourer(ctx context.Context, editorUserID string, labourerID string, req dto.UpdateLabourerRequest) (*domain.Labourer, error) {
	labourer, err := s.GetLabourerByID(ctx, labourerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
		}
		labourer.Name = *req.Name
	}
	if req.DefaultDailyWage != nil {
		if req.DefaultDailyWage.IsNegative() {
			return nil, fmt.Errorf("%w: defaultDailyWage must not be negative", apperrors.ErrValidation)
		}
		// Wage changes only affect unsettled days; frozen periods keep the
		// wage snapshotted in their settlement.
		labourer.DefaultDailyWage = *req.DefaultDailyWage
	}
	labourer.Touch(editorUserID, time.Now().UTC())

	if err := s.labourerRepo.UpdateLabourer(ctx, *labourer); err != nil {
		s.LogError(ctx, err, "failed to update labourer", slog.String("labourer_id", labourerID))
		return nil, err
	}
	return labourer, nil
}

func (s *labourerService) DeleteLabourer(ctx context.Context, editorUserID string, labourerID string) error {
	if err := s.labourerRepo.MarkLabourerDeleted(ctx, labourerID, editorUserID, time.Now().UTC()); err != nil {
		return err
	}
	s.LogInfo(ctx, "labourer soft-deleted", slog.String("labourer_id", labourerID))
	return nil
}
