package theme

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// Source supplies the registry a request should be served from.
type Source interface {
	Current() *Registry
}

// Handler handles theme-related HTTP requests.
type Handler struct {
	source Source
}

// NewHandler creates a new theme handler.
func NewHandler(source Source) *Handler {
	return &Handler{
		source: source,
	}
}

// Register mounts the theme endpoints.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/theme.css", h.HandleCSS)
	mux.HandleFunc("/api/theme/tokens", h.HandleTokens)
	mux.HandleFunc("/api/theme/overrides", h.HandleOverrides)
	mux.HandleFunc("/api/severity", h.HandleSeverity)
	mux.HandleFunc("/api/confidence", h.HandleConfidence)
}

// HandleCSS serves the custom-property stylesheet.
func (h *Handler) HandleCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(h.source.Current().CSS()))
}

// HandleTokens returns every token family and composite.
func (h *Handler) HandleTokens(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.source.Current().Snapshot())
}

// HandleOverrides returns the component library configuration.
func (h *Handler) HandleOverrides(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.source.Current().UIOverrides())
}

type severityResponse struct {
	Score    string   `json:"score"`
	Severity Severity `json:"severity"`
	Color    string   `json:"color"`
}

// HandleSeverity classifies ?score=. Unparsable scores are not an error;
// they classify as info like everywhere else.
func (h *Handler) HandleSeverity(w http.ResponseWriter, r *http.Request) {
	score := r.URL.Query().Get("score")
	tok := h.source.Current().SeverityColor(score)
	writeJSON(w, http.StatusOK, severityResponse{
		Score:    score,
		Severity: Severity(tok.Name),
		Color:    tok.Value,
	})
}

type confidenceResponse struct {
	Confidence float64 `json:"confidence"`
	Token      string  `json:"token"`
	Color      string  `json:"color"`
}

// HandleConfidence classifies ?value=.
func (h *Handler) HandleConfidence(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("value"))
	if raw == "" {
		http.Error(w, "value parameter required", http.StatusBadRequest)
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		http.Error(w, "invalid value", http.StatusBadRequest)
		return
	}
	reg := h.source.Current()
	tok := reg.ConfidenceColor(v)
	writeJSON(w, http.StatusOK, confidenceResponse{
		Confidence: v,
		Token:      string(tok.Family) + "." + tok.Name,
		Color:      tok.Value,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
