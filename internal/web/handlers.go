package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"prompt-studio/internal/preview"
	"prompt-studio/internal/studio"
)

type apiError struct {
	Error string `json:"error"`
}

type catalogResponse struct {
	Options  studio.Catalog                 `json:"options"`
	Defaults map[string]studio.Intelligence `json:"defaults"`
	Fallback studio.Intelligence            `json:"fallback"`
	Form     studio.ProductFormData         `json:"form"`
	Slots    map[string][]studio.Slot       `json:"slots"`
}

type promptsResponse struct {
	Outputs []studio.PromptOutput `json:"outputs"`
}

type previewRequest struct {
	Form     studio.ProductFormData `json:"form"`
	OutputID string                 `json:"outputId"`
}

type previewResponse struct {
	OutputID string `json:"outputId"`
	Image    string `json:"image"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"preview": s.preview.Enabled(),
	})
}

func (s *Server) catalog(w http.ResponseWriter, r *http.Request) {
	opts := studio.AllOptions()
	defaults := make(map[string]studio.Intelligence, len(opts.Categories))
	for _, c := range opts.Categories {
		if in, ok := studio.CategoryDefaults(c.Name); ok {
			defaults[c.Name] = in
		}
	}
	writeJSON(w, http.StatusOK, catalogResponse{
		Options:  opts,
		Defaults: defaults,
		Fallback: studio.Resolve("", ""),
		Form:     studio.DefaultForm(),
		Slots: map[string][]studio.Slot{
			"lifestyle": studio.Slots("Sports & Fitness"),
			"studio":    studio.Slots("Electronics & Technology"),
		},
	})
}

func (s *Server) intelligence(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, studio.Resolve(q.Get("name"), q.Get("category")))
}

func (s *Server) prompts(w http.ResponseWriter, r *http.Request) {
	var form studio.ProductFormData
	if err := decodeJSON(w, r, &form); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}
	if err := form.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, promptsResponse{Outputs: studio.Compose(form.Normalize())})
}

func (s *Server) previewImage(w http.ResponseWriter, r *http.Request) {
	if !s.preview.Enabled() {
		writeJSON(w, http.StatusServiceUnavailable, apiError{Error: preview.ErrDisabled.Error()})
		return
	}

	var body previewRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}
	if err := body.Form.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}

	form := body.Form.Normalize()
	outputID := strings.TrimSpace(body.OutputID)
	if outputID == "" {
		outputID = studio.OutputID(1)
	}
	output, ok := studio.FindOutput(studio.Compose(form), outputID)
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "unknown output id " + outputID})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	key := strings.TrimSpace(r.Header.Get("X-Session-ID"))
	img, err := s.preview.Preview(ctx, key, form, output)
	if err != nil {
		status := previewStatus(err)
		if status >= 500 {
			s.logger.Error("preview failed", "err", err, "request_id", RequestIDFromContext(r.Context()))
		}
		writeJSON(w, status, apiError{Error: previewMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, previewResponse{OutputID: output.ID, Image: img.DataURL()})
}

func previewStatus(err error) int {
	switch {
	case errors.Is(err, preview.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, preview.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, preview.ErrInvalidDataURL):
		return http.StatusBadRequest
	case errors.Is(err, preview.ErrBusy), errors.Is(err, preview.ErrDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

func previewMessage(err error) string {
	switch {
	case errors.Is(err, preview.ErrNoImage):
		return "Visualization failed. Please try a different style."
	case errors.Is(err, preview.ErrSuperseded), errors.Is(err, preview.ErrRateLimited),
		errors.Is(err, preview.ErrInvalidDataURL), errors.Is(err, preview.ErrBusy):
		return err.Error()
	}
	return "Generation error: " + err.Error()
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
