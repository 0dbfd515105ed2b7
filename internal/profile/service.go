package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"veripass/internal/platform/metrics"
	"veripass/pkg/platform/audit"
)

// Service is the thin CRUD layer over the profile store.
type Service struct {
	store   Store
	auditor *audit.Publisher
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(store Store, auditor *audit.Publisher, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: store, auditor: auditor, logger: logger, metrics: m}
}

// CreateRequest carries compliance-officer-entered profile fields.
type CreateRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Regulations []string `json:"regulations"`
	Rules       Rules    `json:"rules"`
}

func (s *Service) Create(ctx context.Context, req CreateRequest, actor string) (Profile, error) {
	p := Profile{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Regulations: req.Regulations,
		Rules:       req.Rules,
		CreatedAt:   time.Now(),
	}
	if err := s.store.Create(ctx, p); err != nil {
		return Profile{}, fmt.Errorf("create profile: %w", err)
	}

	s.metrics.IncProfilesCreated()
	s.emitAudit(ctx, audit.ActionProfileCreate, p.ID, actor, map[string]string{
		"name":     p.Name,
		"category": p.Category,
	})
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id, actor string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.emitAudit(ctx, audit.ActionProfileDelete, id, actor, nil)
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (Profile, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Profile, error) {
	return s.store.ListAll(ctx)
}

func (s *Service) emitAudit(ctx context.Context, action, entityID, actor string, details map[string]string) {
	event := audit.Event{
		Action:   action,
		EntityID: entityID,
		UserID:   actor,
		Details:  details,
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit emit failed",
			"action", action,
			"entity_id", entityID,
			"error", err,
		)
	}
}
