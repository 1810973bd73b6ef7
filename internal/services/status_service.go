package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Abhishek200416/p2/internal/models"
	"github.com/Abhishek200416/p2/internal/repository"
)

type StatusService struct {
	repo   repository.StatusRepository
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewStatusService(repo repository.StatusRepository, logger *zap.SugaredLogger) *StatusService {
	return &StatusService{repo: repo, logger: logger, now: time.Now}
}

func (s *StatusService) Create(ctx context.Context, clientName string) (*models.StatusCheck, error) {
	check := &models.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: clientName,
		Timestamp:  s.now().UTC(),
	}
	if err := s.repo.Create(ctx, check); err != nil {
		s.logger.Errorf("status check insert: %v", err)
		return nil, err
	}
	return check, nil
}

func (s *StatusService) List(ctx context.Context) ([]models.StatusCheck, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Errorf("listing status checks: %v", err)
		return nil, err
	}
	return list, nil
}
