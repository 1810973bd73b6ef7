package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Abhishek200416/p2/internal/apperr"
	"github.com/Abhishek200416/p2/internal/models"
	"github.com/Abhishek200416/p2/internal/repository"
)

type ContentService struct {
	repo   repository.ContentRepository
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewContentService(repo repository.ContentRepository, logger *zap.SugaredLogger) *ContentService {
	return &ContentService{repo: repo, logger: logger, now: time.Now}
}

// Get returns the current document, or a placeholder payload when none
// has been saved yet. The absence of content is not an error.
func (s *ContentService) Get(ctx context.Context) (models.ContentDocument, error) {
	doc, err := s.repo.GetCurrent(ctx)
	if err != nil {
		s.logger.Errorf("fetching content: %v", err)
		return nil, err
	}
	if doc == nil {
		return models.ContentDocument{"message": "No content found, using defaults"}, nil
	}
	return doc, nil
}

// Save validates the required top-level sections, stamps the audit
// fields and replaces the current document wholesale. Unknown sections
// are kept as-is so editor-added fields survive the round trip.
func (s *ContentService) Save(ctx context.Context, doc models.ContentDocument) (time.Time, error) {
	if missing := doc.MissingSections(); len(missing) > 0 {
		return time.Time{}, fmt.Errorf("%w: missing sections: %s", apperr.ErrValidation, strings.Join(missing, ", "))
	}
	savedAt := s.now().UTC()
	doc["updated_at"] = savedAt
	doc["updated_by"] = "owner"
	if err := s.repo.ReplaceCurrent(ctx, doc); err != nil {
		s.logger.Errorf("saving content: %v", err)
		return time.Time{}, err
	}
	return savedAt, nil
}
