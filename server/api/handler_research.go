package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lakefield/deepresearch/pkg/tool"
	"github.com/lakefield/deepresearch/pkg/tool/research"

	"github.com/google/uuid"
)

type researchRequest struct {
	Query string `json:"query"`

	Complexity            string `json:"complexity,omitempty"`
	EnableCodeInterpreter bool   `json:"enable_code_interpreter,omitempty"`

	Provider string `json:"provider,omitempty"`
}

func (h *Handler) handleResearch(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()

	w.Header().Set("X-Request-Id", id)

	var req researchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := h.researchTool(r.Context())

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	parameters := map[string]any{
		"query": req.Query,
	}

	if req.Complexity != "" {
		parameters["complexity"] = req.Complexity
	}

	if req.EnableCodeInterpreter {
		parameters["enable_code_interpreter"] = true
	}

	if req.Provider != "" {
		parameters["provider"] = req.Provider
	}

	slog.InfoContext(r.Context(), "research request", "id", id)

	result, err := p.Execute(r.Context(), research.Name, parameters)

	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJson(w, result)
}

func (h *Handler) researchTool(ctx context.Context) (tool.Provider, error) {
	for _, p := range h.Tools() {
		tools, err := p.Tools(ctx)

		if err != nil {
			continue
		}

		for _, t := range tools {
			if t.Name == research.Name {
				return p, nil
			}
		}
	}

	return nil, errors.New("research tool not configured")
}
