package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"veripass/internal/platform/metrics"
	"veripass/pkg/platform/audit"
)

// ErrInvalidTransition is returned when a submission targets a product that
// is not in the NotSubmitted state.
type ErrInvalidTransition struct {
	From VerificationStatus
}

func (e ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot submit product in status %q", e.From)
}

// Service is the thin CRUD layer over the product store. Verification
// decisions live in the verification package; this service only handles
// supplier-facing record keeping.
type Service struct {
	store   Store
	auditor *audit.Publisher
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(store Store, auditor *audit.Publisher, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: store, auditor: auditor, logger: logger, metrics: m}
}

// CreateRequest carries supplier-entered passport fields.
type CreateRequest struct {
	Name                string       `json:"name"`
	Category            string       `json:"category"`
	Description         string       `json:"description"`
	Materials           []Material   `json:"materials"`
	SustainabilityScore *int         `json:"sustainabilityScore"`
	Declarations        Declarations `json:"compliance"`
}

// Create records a new passport in the NotSubmitted state.
func (s *Service) Create(ctx context.Context, req CreateRequest, actor string) (Product, error) {
	now := time.Now()
	p := Product{
		ID:                  uuid.NewString(),
		Name:                req.Name,
		Category:            req.Category,
		Description:         req.Description,
		Materials:           req.Materials,
		SustainabilityScore: req.SustainabilityScore,
		Declarations:        req.Declarations,
		VerificationStatus:  StatusNotSubmitted,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}

	s.metrics.IncProductsCreated()
	s.emitAudit(ctx, audit.ActionProductCreate, p.ID, actor, map[string]string{
		"name":     p.Name,
		"category": p.Category,
	})
	return p, nil
}

// Submit moves a product from NotSubmitted to Pending so the next
// verification run picks it up.
func (s *Service) Submit(ctx context.Context, id, actor string) error {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.VerificationStatus != StatusNotSubmitted {
		return ErrInvalidTransition{From: p.VerificationStatus}
	}
	if err := s.store.SetStatus(ctx, id, StatusPending); err != nil {
		return fmt.Errorf("submit product: %w", err)
	}

	s.metrics.IncProductsSubmitted()
	s.emitAudit(ctx, audit.ActionProductSubmit, id, actor, nil)
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.store.List(ctx)
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
