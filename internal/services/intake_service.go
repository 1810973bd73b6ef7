package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Abhishek200416/p2/internal/models"
	"github.com/Abhishek200416/p2/internal/repository"
)

// SubscribeStatus distinguishes a fresh subscription from a repeat one.
type SubscribeStatus string

const (
	SubscribeNew      SubscribeStatus = "new"
	SubscribeExisting SubscribeStatus = "existing"
)

type IntakeService struct {
	subscribers repository.SubscriberRepository
	feedback    repository.FeedbackRepository
	contacts    repository.ContactRepository
	logger      *zap.SugaredLogger
	now         func() time.Time
}

func NewIntakeService(
	subscribers repository.SubscriberRepository,
	feedback repository.FeedbackRepository,
	contacts repository.ContactRepository,
	logger *zap.SugaredLogger,
) *IntakeService {
	return &IntakeService{
		subscribers: subscribers,
		feedback:    feedback,
		contacts:    contacts,
		logger:      logger,
		now:         time.Now,
	}
}

// Subscribe records a newsletter subscription, idempotent by email. The
// read is a fast path; the unique index on email is what actually
// guarantees at most one row per address under concurrent calls.
func (s *IntakeService) Subscribe(ctx context.Context, email, ip string) (SubscribeStatus, error) {
	existing, err := s.subscribers.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Errorf("subscriber lookup: %v", err)
		return "", err
	}
	if existing != nil {
		return SubscribeExisting, nil
	}
	sub := &models.Subscriber{
		ID:           uuid.NewString(),
		Email:        email,
		SubscribedAt: s.now().UTC(),
		IPAddress:    ip,
	}
	if err := s.subscribers.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return SubscribeExisting, nil
		}
		s.logger.Errorf("subscriber insert: %v", err)
		return "", err
	}
	return SubscribeNew, nil
}

// SubscriberListing is the owner-facing projection: ids and IPs withheld.
type SubscriberListing struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

func (s *IntakeService) ListSubscribers(ctx context.Context) ([]SubscriberListing, error) {
	subs, err := s.subscribers.ListAll(ctx)
	if err != nil {
		s.logger.Errorf("listing subscribers: %v", err)
		return nil, err
	}
	listing := make([]SubscriberListing, 0, len(subs))
	for _, sub := range subs {
		listing = append(listing, SubscriberListing{Email: sub.Email, SubscribedAt: sub.SubscribedAt})
	}
	return listing, nil
}

// SubmitFeedback assigns id and timestamp and persists unconditionally.
func (s *IntakeService) SubmitFeedback(ctx context.Context, f *models.Feedback) (string, error) {
	f.ID = uuid.NewString()
	f.Timestamp = s.now().UTC()
	if err := s.feedback.Create(ctx, f); err != nil {
		s.logger.Errorf("feedback insert: %v", err)
		return "", err
	}
	return f.ID, nil
}

func (s *IntakeService) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	list, err := s.feedback.ListAll(ctx)
	if err != nil {
		s.logger.Errorf("listing feedback: %v", err)
		return nil, err
	}
	return list, nil
}

// SubmitContact assigns id, timestamp and the initial workflow status.
func (s *IntakeService) SubmitContact(ctx context.Context, c *models.Contact) (string, error) {
	c.ID = uuid.NewString()
	c.Timestamp = s.now().UTC()
	c.Status = "new"
	if err := s.contacts.Create(ctx, c); err != nil {
		s.logger.Errorf("contact insert: %v", err)
		return "", err
	}
	return c.ID, nil
}

func (s *IntakeService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	list, err := s.contacts.ListAll(ctx)
	if err != nil {
		s.logger.Errorf("listing contacts: %v", err)
		return nil, err
	}
	return list, nil
}

// AnalyticsSummary is computed live on every call; nothing is cached.
type AnalyticsSummary struct {
	Subscribers    int64          `json:"subscribers"`
	Feedback       int64          `json:"feedback"`
	Contacts       int64          `json:"contacts"`
	AvgRating      float64        `json:"avg_rating"`
	RecentActivity RecentActivity `json:"recent_activity"`
}

type RecentActivity struct {
	Feedback30d int64 `json:"feedback_30d"`
	Contacts30d int64 `json:"contacts_30d"`
}

func (s *IntakeService) Summarize(ctx context.Context) (*AnalyticsSummary, error) {
	subCount, err := s.subscribers.Count(ctx)
	if err != nil {
		return nil, err
	}
	fbCount, err := s.feedback.Count(ctx)
	if err != nil {
		return nil, err
	}
	ctCount, err := s.contacts.Count(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := s.now().UTC().Add(-30 * 24 * time.Hour)
	recent, err := s.feedback.ListSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	var avg float64
	if len(recent) > 0 {
		var sum int
		for _, f := range recent {
			sum += f.Rating
		}
		avg = math.Round(float64(sum)/float64(len(recent))*10) / 10
	}
	recentContacts, err := s.contacts.CountSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	return &AnalyticsSummary{
		Subscribers: subCount,
		Feedback:    fbCount,
		Contacts:    ctCount,
		AvgRating:   avg,
		RecentActivity: RecentActivity{
			Feedback30d: int64(len(recent)),
			Contacts30d: recentContacts,
		},
	}, nil
}
