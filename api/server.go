package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"threatplane/buildcfg"
	"threatplane/theme"
)

// DescribeFunc assembles the build descriptor for the current theme.
type DescribeFunc func(reg *theme.Registry) buildcfg.Descriptor

type Server struct {
	themes   theme.Source
	describe DescribeFunc
	hub      *Hub
	upgrader websocket.Upgrader
	log      *zap.SugaredLogger
}

func NewServer(themes theme.Source, describe DescribeFunc, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{
		themes:   themes,
		describe: describe,
		hub:      NewHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		log: log,
	}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/descriptor", s.handleDescriptor)
	mux.HandleFunc("/api/ws", s.handleWS)
}

// Hub exposes the connected dashboard clients.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"clients": s.hub.Len(),
	})
}

func (s *Server) handleDescriptor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = buildcfg.FormatJSON
	}

	d := s.describe(s.themes.Current())
	var buf bytes.Buffer
	if err := d.Encode(&buf, format); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch format {
	case buildcfg.FormatYAML, "yml":
		w.Header().Set("Content-Type", "application/yaml")
	case buildcfg.FormatSCSS:
		w.Header().Set("Content-Type", "text/x-scss; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	_, _ = w.Write(buf.Bytes())
}

// ---------- live theme updates ----------

type themeMessage struct {
	Type   string         `json:"type"`
	CSS    string         `json:"css"`
	Tokens theme.Snapshot `json:"tokens"`
	Time   string         `json:"time"`
}

func newThemeMessage(kind string, reg *theme.Registry) themeMessage {
	return themeMessage{
		Type:   kind,
		CSS:    reg.CSS(),
		Tokens: reg.Snapshot(),
		Time:   time.Now().UTC().Format(time.RFC3339),
	}
}

// ThemeUpdated pushes a reloaded theme to every dashboard client.
func (s *Server) ThemeUpdated(reg *theme.Registry) {
	clients := s.hub.Len()
	dropped := s.hub.Broadcast(newThemeMessage("theme-updated", reg))
	s.log.Infow("broadcast theme update", "clients", clients, "dropped", dropped)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnw("websocket upgrade failed", "error", err)
		return
	}
	client := s.hub.Add(conn)
	defer s.hub.Remove(client)

	if err := client.Send(newThemeMessage("theme", s.themes.Current())); err != nil {
		s.log.Debugw("initial theme send failed", "error", err)
		return
	}

	// Clients only listen; reading detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Close disconnects all WebSocket clients.
func (s *Server) Close() {
	s.hub.CloseAll()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warnw("encode response", "error", err)
	}
}
