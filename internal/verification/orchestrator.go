package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"veripass/internal/catalog"
	"veripass/internal/profile"
	"veripass/internal/verification/metrics"
	"veripass/pkg/platform/audit"
)

// ErrNoProfiles aborts a run before any product is touched: no profiles at
// all is a configuration error, not a per-item failure.
var ErrNoProfiles = errors.New("no compliance profiles configured")

// summaryCheckFailed is the generic summary recorded when the narrative
// service errors or times out for a product.
const summaryCheckFailed = "automated compliance check failed"

// ProfileSource supplies the rule profiles consulted by a run.
type ProfileSource interface {
	ListAll(ctx context.Context) ([]profile.Profile, error)
}

// ProductSource supplies pending products and commits staged outcomes.
type ProductSource interface {
	ListPending(ctx context.Context) ([]catalog.Product, error)
	ApplyVerifications(ctx context.Context, updates []catalog.VerificationUpdate) error
}

// AuditSink records verification decisions. Emit failures are logged and
// never fail the run.
type AuditSink interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Orchestrator is the scheduled batch workflow that finalizes Pending
// products into Verified or Failed.
//
// Pending products are not locked between the read and the final batch
// commit; a concurrent resubmission is overwritten last-writer-wins. Audit
// events are emitted eagerly per product and are not part of the atomic
// product commit, so they can outlive a failed commit.
type Orchestrator struct {
	profiles  ProfileSource
	products  ProductSource
	evaluator *Evaluator
	narrative NarrativeVerifier
	auditor   AuditSink
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer

	concurrency int
	now         func() time.Time
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithConcurrency bounds the per-run worker pool. The default of 1 keeps
// processing strictly sequential; higher values preserve per-item error
// isolation and the one-audit-event-per-product guarantee.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithClock overrides the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

func NewOrchestrator(
	profiles ProfileSource,
	products ProductSource,
	evaluator *Evaluator,
	narrative NarrativeVerifier,
	auditor AuditSink,
	logger *slog.Logger,
	m *metrics.Metrics,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		profiles:    profiles,
		products:    products,
		evaluator:   evaluator,
		narrative:   narrative,
		auditor:     auditor,
		logger:      logger,
		metrics:     m,
		tracer:      otel.Tracer("veripass/verification"),
		concurrency: 1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// verdict is the finalized outcome for one product.
type verdict struct {
	Status  catalog.VerificationStatus
	Summary string
}

// Run executes one verification pass over every pending product and commits
// all staged updates as one atomic batch. Per-product failures never abort
// the loop; only a missing profile configuration or a commit failure is
// fatal. Safe to re-run: products stay Pending until a commit succeeds.
func (o *Orchestrator) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := o.tracer.Start(ctx, "verification.run")
	defer span.End()
	start := o.now()

	profiles, err := o.profiles.ListAll(ctx)
	if err != nil {
		o.metrics.IncRun("config_error")
		return RunSummary{}, fmt.Errorf("list profiles: %w", err)
	}
	byCategory := make(map[string]profile.Profile, len(profiles))
	for _, p := range profiles {
		byCategory[p.Category] = p
	}
	if len(byCategory) == 0 {
		o.metrics.IncRun("config_error")
		return RunSummary{}, ErrNoProfiles
	}

	pending, err := o.products.ListPending(ctx)
	if err != nil {
		o.metrics.IncRun("config_error")
		return RunSummary{}, fmt.Errorf("list pending products: %w", err)
	}
	if len(pending) == 0 {
		o.metrics.IncRun("ok")
		return RunSummary{}, nil
	}
	span.SetAttributes(attribute.Int("verification.pending", len(pending)))

	var (
		mu      sync.Mutex
		updates = make([]catalog.VerificationUpdate, 0, len(pending))
		summary RunSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for _, product := range pending {
		g.Go(func() error {
			v := o.verifyOne(gctx, product, byCategory)

			// Exactly one audit event per decision, emitted eagerly and
			// deliberately outside the atomic product commit.
			o.emitAudit(gctx, product.ID, v)
			o.metrics.IncOutcome(string(v.Status))

			mu.Lock()
			defer mu.Unlock()
			updates = append(updates, catalog.VerificationUpdate{
				ProductID:            product.ID,
				Status:               v.Status,
				LastVerificationDate: o.now(),
				ComplianceSummary:    v.Summary,
			})
			summary.Processed++
			if v.Status == catalog.StatusVerified {
				summary.Passed++
			} else {
				summary.Failed++
			}
			// Per-item failures are folded into the verdict, never returned.
			return nil
		})
	}
	_ = g.Wait()

	if err := o.products.ApplyVerifications(ctx, updates); err != nil {
		o.metrics.IncRun("commit_error")
		return RunSummary{}, fmt.Errorf("commit verification batch: %w", err)
	}

	o.metrics.IncRun("ok")
	o.metrics.ObserveRunDuration(o.now().Sub(start))
	o.logger.InfoContext(ctx, "verification run completed",
		"processed", summary.Processed,
		"passed", summary.Passed,
		"failed", summary.Failed,
		"duration_ms", o.now().Sub(start).Milliseconds(),
	)
	return summary, nil
}

// verifyOne decides the final status and summary for a single product.
//
// Precedence: the deterministic evaluator gates the narrative service. A
// product that violates profile rules fails immediately on the gap list and
// the narrative service is never called for it. Only deterministically
// clean products are sent to the narrative verifier, whose verdict and
// summary are then final; a narrative error yields Failed with the generic
// summary.
func (o *Orchestrator) verifyOne(ctx context.Context, p catalog.Product, byCategory map[string]profile.Profile) verdict {
	ctx, span := o.tracer.Start(ctx, "verification.product",
		trace.WithAttributes(attribute.String("product.id", p.ID)))
	defer span.End()

	prof, ok := byCategory[p.Category]
	if !ok {
		return verdict{
			Status:  catalog.StatusFailed,
			Summary: fmt.Sprintf("no compliance profile is configured for category %q", p.Category),
		}
	}

	if compliant, gaps := o.evaluator.Evaluate(p, prof); !compliant {
		return verdict{Status: catalog.StatusFailed, Summary: gapSummary(gaps)}
	}

	rules, err := json.Marshal(prof.Rules)
	if err != nil {
		// Profiles are plain data; this only fires on a programming error.
		o.logger.ErrorContext(ctx, "marshal profile rules failed", "profile_id", prof.ID, "error", err)
		return verdict{Status: catalog.StatusFailed, Summary: summaryCheckFailed}
	}

	callStart := o.now()
	result, err := o.narrative.Verify(ctx, NarrativeRequest{
		ProductName:        p.Name,
		ProductInformation: productText(p),
		CompliancePathName: prof.Name,
		ComplianceRules:    string(rules),
	})
	if err != nil {
		o.metrics.ObserveNarrativeLatency("error", o.now().Sub(callStart))
		o.logger.WarnContext(ctx, "narrative verification failed",
			"product_id", p.ID,
			"profile_id", prof.ID,
			"error", err,
		)
		return verdict{Status: catalog.StatusFailed, Summary: summaryCheckFailed}
	}
	o.metrics.ObserveNarrativeLatency("ok", o.now().Sub(callStart))

	status := catalog.StatusFailed
	if result.IsCompliant {
		status = catalog.StatusVerified
	}
	return verdict{Status: status, Summary: result.ComplianceSummary}
}

func (o *Orchestrator) emitAudit(ctx context.Context, productID string, v verdict) {
	event := audit.Event{
		Action:   audit.ActionProductVerify,
		EntityID: productID,
		UserID:   audit.SystemUser,
		Details: map[string]string{
			"status":  string(v.Status),
			"summary": v.Summary,
		},
	}
	if err := o.auditor.Emit(ctx, event); err != nil {
		o.logger.ErrorContext(ctx, "audit emit failed",
			"product_id", productID,
			"status", v.Status,
			"error", err,
		)
	}
}

// gapSummary renders the deterministic gap list as the stored summary.
func gapSummary(gaps []Gap) string {
	parts := make([]string, 0, len(gaps))
	for _, g := range gaps {
		parts = append(parts, fmt.Sprintf("%s: %s", g.Regulation, g.Issue))
	}
	return fmt.Sprintf("failed %d compliance check(s): %s", len(gaps), strings.Join(parts, "; "))
}

// productText flattens the passport into the free text the narrative
// service reads.
func productText(p catalog.Product) string {
	var b strings.Builder
	b.WriteString(p.Description)
	if len(p.Materials) > 0 {
		names := make([]string, 0, len(p.Materials))
		for _, m := range p.Materials {
			names = append(names, m.Name)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Materials: ")
		b.WriteString(strings.Join(names, ", "))
	}
	if p.SustainabilityScore != nil {
		fmt.Fprintf(&b, "\nSustainability score: %d", *p.SustainabilityScore)
	}
	return b.String()
}
