// Package generator turns free text into a validated page configuration.
// It asks the remote synthesis service first, when one is configured, and
// falls back to the local deterministic pipeline on any failure.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Bahjat/page-composer/backend/internal/composer"
	"github.com/Bahjat/page-composer/backend/internal/model"
	"github.com/Bahjat/page-composer/backend/internal/planner"
	"github.com/Bahjat/page-composer/backend/internal/platform/errs"
	"github.com/Bahjat/page-composer/backend/internal/platform/requestid"
	"github.com/Bahjat/page-composer/backend/internal/registry"
	"github.com/Bahjat/page-composer/backend/internal/seed"
	"github.com/Bahjat/page-composer/backend/internal/synth"
)

// Source tells where a configuration came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// DefaultMaxCandidates bounds Candidates unless WithMaxCandidates says otherwise.
const DefaultMaxCandidates = 4

var (
	errKnobRange      = errors.New("must be between 0 and 1")
	errCandidateCount = errors.New("candidate count out of range")
)

// Outcome is a validated configuration, its source and every warning
// collected while producing it.
type Outcome struct {
	Source   Source
	Config   *model.PageConfig
	Warnings []string
}

// Service orchestrates remote and local synthesis and logs results.
type Service struct {
	local         *synth.Synthesizer
	remote        RemoteSynthesizer
	auditor       LinkAuditor
	maxCandidates int
	logger        *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRemote enables the remote synthesis attempt.
func WithRemote(r RemoteSynthesizer) Option {
	return func(s *Service) { s.remote = r }
}

// WithLinkAudit appends link reachability warnings to every outcome.
func WithLinkAudit(a LinkAuditor) Option {
	return func(s *Service) { s.auditor = a }
}

// WithMaxCandidates sets the largest accepted candidate count.
func WithMaxCandidates(n int) Option {
	return func(s *Service) { s.maxCandidates = n }
}

// NewService creates a Service backed by the given local synthesizer.
func NewService(local *synth.Synthesizer, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{local: local, maxCandidates: DefaultMaxCandidates, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate produces a configuration for req.Text. The remote service is
// tried at most once; any remote failure yields a local outcome carrying an
// offline warning rather than an error. An error is returned only for an
// invalid request or when the local pipeline itself fails.
func (s *Service) Generate(ctx context.Context, req model.SynthesisRequest) (*Outcome, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	logger := requestid.Logger(ctx, s.logger)

	base := s.local.Synthesize(req.Text)

	var out *Outcome
	var fallbackWarning string
	if s.remote != nil {
		o, err := s.fromRemote(ctx, req, base)
		if err == nil {
			out = o
		} else {
			attrs := []any{"error", err}
			var appErr *errs.AppError
			if errors.As(err, &appErr) && appErr.UpstreamStatus != 0 {
				attrs = append(attrs, "upstream_status", appErr.UpstreamStatus)
			}
			logger.Warn("remote synthesis failed, using local pipeline", attrs...)
			fallbackWarning = fmt.Sprintf("degraded: remote synthesis unavailable (%s), generated offline", errs.KindOf(err))
		}
	}

	if out == nil {
		o, err := s.fromLocal(base)
		if err != nil {
			logger.Error("local synthesis failed", "error", err)
			return nil, err
		}
		if fallbackWarning != "" {
			o.Warnings = append([]string{fallbackWarning}, o.Warnings...)
		}
		out = o
	}

	if s.auditor != nil {
		out.Warnings = append(out.Warnings, s.auditor.Audit(ctx, out.Config)...)
	}

	logger.Info("generation complete",
		"source", out.Source,
		"brand", out.Config.Brand.Name,
		"tone", out.Config.Brand.Tone,
		"industry", out.Config.Brand.Industry,
		"sections", len(out.Config.Sections),
		"warnings", len(out.Warnings),
	)
	return out, nil
}

func (s *Service) fromRemote(ctx context.Context, req model.SynthesisRequest, base *model.PageConfig) (*Outcome, error) {
	resp, err := s.remote.Synthesize(ctx, req)
	if err != nil {
		return nil, err
	}

	res, err := planner.Apply(resp.PageConfig, base)
	if err != nil {
		return nil, err
	}
	if err := composer.Validate(res.Config); err != nil {
		return nil, err
	}

	warnings := append(append([]string{}, resp.Warnings...), res.Warnings...)
	return &Outcome{Source: SourceRemote, Config: res.Config, Warnings: warnings}, nil
}

// fromLocal runs the synthesized configuration through the same apply and
// compose gates a remote plan passes.
func (s *Service) fromLocal(base *model.PageConfig) (*Outcome, error) {
	plan, err := model.PlanFromConfig(base)
	if err != nil {
		return nil, err
	}
	res, err := planner.Apply(plan, nil)
	if err != nil {
		return nil, err
	}
	if err := composer.Validate(res.Config); err != nil {
		return nil, err
	}
	return &Outcome{Source: SourceLocal, Config: res.Config, Warnings: res.Warnings}, nil
}

// Apply merges an externally edited plan onto base and validates the result.
func (s *Service) Apply(ctx context.Context, plan *model.Plan, base *model.PageConfig) (*planner.Result, error) {
	logger := requestid.Logger(ctx, s.logger)

	res, err := planner.Apply(plan, base)
	if err != nil {
		logger.Info("plan rejected", "error", err)
		return nil, err
	}
	if err := composer.Validate(res.Config); err != nil {
		logger.Error("applied plan failed composition", "error", err)
		return nil, err
	}

	logger.Info("plan applied", "sections", len(res.Config.Sections), "warnings", len(res.Warnings))
	return res, nil
}

// Candidates returns n configurations for text. The first is the local
// synthesis itself; candidate i re-draws every section variant from a
// generator seeded with the text seed plus i, keeping the content.
func (s *Service) Candidates(ctx context.Context, text string, n int) ([]*model.PageConfig, error) {
	if n < 1 || n > s.maxCandidates {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Field:   "count",
			Message: fmt.Sprintf("count must be between 1 and %d", s.maxCandidates),
			Cause:   fmt.Errorf("%w: %d", errCandidateCount, n),
		}
	}

	base := s.local.Synthesize(text)
	textSeed := int64(seed.FromText(text))
	out := make([]*model.PageConfig, n)

	g, ctx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg := base.Clone()
			if i > 0 {
				redraw(cfg, seed.NewGenerator(textSeed+int64(i)))
			}
			if err := composer.Validate(cfg); err != nil {
				return err
			}
			out[i] = cfg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	requestid.Logger(ctx, s.logger).Info("candidates generated", "count", n)
	return out, nil
}

func redraw(cfg *model.PageConfig, g *seed.Generator) {
	for i := range cfg.Sections {
		id := cfg.Sections[i].ID
		cfg.Sections[i].Variant = g.Int(registry.VariantCount(id)) + 1
	}
}

func validateRequest(req model.SynthesisRequest) error {
	knobs := []struct {
		field string
		value *float64
	}{
		{"creativity", req.Creativity},
		{"specificity", req.Specificity},
	}
	for _, k := range knobs {
		if k.value != nil && !(*k.value >= 0 && *k.value <= 1) {
			return &errs.AppError{
				Kind:    errs.InvalidInput,
				Field:   k.field,
				Message: fmt.Sprintf("%s must be between 0 and 1", k.field),
				Cause:   fmt.Errorf("%w: %v", errKnobRange, *k.value),
			}
		}
	}
	return nil
}
