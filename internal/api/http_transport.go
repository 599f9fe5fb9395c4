// Package api exposes the page generation pipeline over HTTP JSON.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Bahjat/page-composer/backend/internal/generator"
	"github.com/Bahjat/page-composer/backend/internal/model"
	"github.com/Bahjat/page-composer/backend/internal/platform/errs"
	"github.com/Bahjat/page-composer/backend/internal/render"
)

const (
	generateTimeout = 60 * time.Second
	maxRequestBody  = 1 << 20 // 1 MB
)

var (
	errConfigRequired = errors.New("the \"pageConfig\" field is required")
	errPlanRequired   = errors.New("the \"plan\" field is required")
)

// Transport handles HTTP requests for page generation.
type Transport struct {
	service  *generator.Service
	renderer *render.Set
	logger   *slog.Logger
}

// NewTransport creates an HTTP transport backed by the given service and
// presentation handler set.
func NewTransport(service *generator.Service, renderer *render.Set, logger *slog.Logger) *Transport {
	return &Transport{service: service, renderer: renderer, logger: logger}
}

// RegisterRoutes attaches the transport's handlers to the given router.
func (t *Transport) RegisterRoutes(r chi.Router) {
	r.Post("/generate", t.handleGenerate)
	r.Post("/apply", t.handleApply)
	r.Post("/compose", t.handleCompose)
	r.Post("/render", t.handleRender)
	r.Post("/candidates", t.handleCandidates)
}

type applyRequest struct {
	Plan *model.Plan       `json:"plan"`
	Base *model.PageConfig `json:"base,omitempty"`
}

type configRequest struct {
	PageConfig *model.PageConfig `json:"pageConfig"`
}

type candidatesRequest struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

func (t *Transport) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.SynthesisRequest
	if !t.decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	out, err := t.service.Generate(ctx, req)
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, model.GenerateResponse{
		Source:     string(out.Source),
		PageConfig: out.Config,
		Warnings:   nonNil(out.Warnings),
	})
}

func (t *Transport) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !t.decode(w, r, &req) {
		return
	}
	if req.Plan == nil {
		t.renderError(w, http.StatusBadRequest, errPlanRequired.Error(), "", "plan")
		return
	}

	res, err := t.service.Apply(r.Context(), req.Plan, req.Base)
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, model.ApplyResponse{
		PageConfig: res.Config,
		Warnings:   nonNil(res.Warnings),
	})
}

func (t *Transport) handleCompose(w http.ResponseWriter, r *http.Request) {
	cfg, ok := t.decodeConfig(w, r)
	if !ok {
		return
	}

	bound, err := t.renderer.Compose(cfg)
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	resp := model.ComposeResponse{Sections: make([]model.ComposedSection, 0, len(bound))}
	for _, b := range bound {
		resp.Sections = append(resp.Sections, model.ComposedSection{
			ID:      b.Section.ID,
			Variant: b.Section.Variant,
			Handler: b.Handler.Name(),
		})
	}
	t.renderJSON(w, http.StatusOK, resp)
}

func (t *Transport) handleRender(w http.ResponseWriter, r *http.Request) {
	cfg, ok := t.decodeConfig(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := t.renderer.RenderPage(&buf, cfg); err != nil {
		t.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) handleCandidates(w http.ResponseWriter, r *http.Request) {
	var req candidatesRequest
	if !t.decode(w, r, &req) {
		return
	}

	candidates, err := t.service.Candidates(r.Context(), req.Text, req.Count)
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, model.CandidatesResponse{Candidates: candidates})
}

func (t *Transport) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		message := "Invalid request body. Please send a JSON object."
		if !errors.Is(err, io.EOF) {
			message = "Invalid request body: " + err.Error()
		}
		t.renderError(w, http.StatusBadRequest, message, "", "")
		return false
	}
	return true
}

func (t *Transport) decodeConfig(w http.ResponseWriter, r *http.Request) (*model.PageConfig, bool) {
	var req configRequest
	if !t.decode(w, r, &req) {
		return nil, false
	}
	if req.PageConfig == nil {
		t.renderError(w, http.StatusBadRequest, errConfigRequired.Error(), "", "pageConfig")
		return nil, false
	}
	return req.PageConfig, true
}

func (t *Transport) handleServiceError(w http.ResponseWriter, err error) {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		t.renderError(w, statusFor(appErr.Kind), appErr.Error(), appErr.Section, appErr.Field)
		return
	}

	t.logger.Error("unexpected error", "error", err)
	t.renderError(w, http.StatusInternalServerError, "An unexpected error occurred.", "", "")
}

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.InvalidInput, errs.InvalidPlan:
		return http.StatusBadRequest
	case errs.MissingSection, errs.DuplicateSection, errs.VariantOutOfRange, errs.InvalidProps:
		return http.StatusUnprocessableEntity
	case errs.Unreachable, errs.UpstreamFailed:
		return http.StatusBadGateway
	case errs.Timeout:
		return http.StatusGatewayTimeout
	case errs.HandlerNotFound, errs.Unknown:
		// 500 Internal Server Error
	}
	return http.StatusInternalServerError
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string, section, field string) {
	t.renderJSON(w, status, model.ErrorResponse{
		Error:      http.StatusText(status),
		StatusCode: status,
		Message:    message,
		Section:    model.SectionID(section),
		Field:      field,
	})
}

func nonNil(warnings []string) []string {
	if warnings == nil {
		return []string{}
	}
	return warnings
}
