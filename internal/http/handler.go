package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/generator"
	"github.com/davidbz/forge/internal/observability"
	"github.com/davidbz/forge/internal/planner"
	"github.com/davidbz/forge/internal/storage"
)

// GenerateRequest is the POST /api/generate body.
type GenerateRequest struct {
	Description string `json:"description"`
	AccessToken string `json:"accessToken,omitempty"`
	APIKey      string `json:"apiKey,omitempty"`
}

// RefineRequest is the POST /api/refine body.
type RefineRequest struct {
	Plan        *domain.ProjectPlan `json:"plan"`
	Files       domain.FileMap      `json:"files"`
	Feedback    string              `json:"feedback"`
	AccessToken string              `json:"accessToken,omitempty"`
	APIKey      string              `json:"apiKey,omitempty"`
}

// StreamEvent is one newline-delimited JSON progress event of the generate
// stream.
type StreamEvent struct {
	Type     string              `json:"type"`
	Message  string              `json:"message,omitempty"`
	Plan     *domain.ProjectPlan `json:"plan,omitempty"`
	Path     string              `json:"path,omitempty"`
	Content  string              `json:"content,omitempty"`
	Fallback bool                `json:"fallback,omitempty"`
	Files    int                 `json:"files,omitempty"`
}

// Handler handles HTTP requests.
type Handler struct {
	planner   *planner.Planner
	generator *generator.Generator
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(p *planner.Planner, g *generator.Generator) *Handler {
	return &Handler{
		planner:   p,
		generator: g,
	}
}

// HandleGenerate plans and generates a project, streaming progress as
// newline-delimited JSON. Generated files live in memory for the duration of
// the request; persisting them is the caller's concern.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Description == "" {
		http.Error(w, "description is required", http.StatusBadRequest)
		return
	}

	logger := observability.FromContext(ctx)
	logger.Info("generate request received")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")

	stream := func(event StreamEvent) {
		data, err := json.Marshal(event)
		if err != nil {
			logger.Error("failed to encode stream event", observability.Error(err))
			return
		}
		fmt.Fprintf(w, "%s\n", data)
		flusher.Flush()
	}

	auth := authContext(req.AccessToken, req.APIKey)

	stream(StreamEvent{Type: "status", Message: "planning"})

	result, err := h.planner.CreatePlan(ctx, req.Description, auth)
	if err != nil {
		logger.Error("planning failed", observability.Error(err))
		stream(StreamEvent{Type: "error", Message: err.Error()})
		return
	}

	if result.Type == domain.ResultChat {
		stream(StreamEvent{Type: "chat", Message: result.Message})
		return
	}

	stream(StreamEvent{Type: "plan", Plan: result.Plan})

	adapter := storage.NewMemory()
	files, err := h.generator.Generate(ctx, result.Plan, adapter, auth, func(e generator.Event) {
		stream(StreamEvent{
			Type:     e.Kind,
			Path:     e.Path,
			Content:  e.Content,
			Fallback: e.Fallback,
		})
	})
	if err != nil {
		logger.Error("generation failed", observability.Error(err))
		stream(StreamEvent{Type: "error", Message: err.Error()})
		return
	}

	stream(StreamEvent{Type: "done", Files: len(files)})
}

// HandleRefine applies feedback to a previously generated file set and
// responds with the changed files only.
func (h *Handler) HandleRefine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RefineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Plan == nil {
		http.Error(w, "plan is required", http.StatusBadRequest)
		return
	}
	if req.Feedback == "" {
		http.Error(w, "feedback is required", http.StatusBadRequest)
		return
	}

	logger := observability.FromContext(ctx)
	logger.Info("refine request received",
		observability.String("project", req.Plan.ProjectName),
		observability.Int("files", len(req.Files)))

	changed, err := h.planner.Refine(ctx, req.Plan, req.Files, req.Feedback, authContext(req.AccessToken, req.APIKey))
	if err != nil {
		logger.Error("refinement failed", observability.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]domain.FileMap{"files": changed}); err != nil {
		logger.Error("failed to encode response", observability.Error(err))
	}
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}

func authContext(accessToken, apiKey string) *domain.AuthContext {
	if accessToken == "" && apiKey == "" {
		return nil
	}
	return &domain.AuthContext{AccessToken: accessToken, APIKey: apiKey}
}
