package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/wricardo/mcp-training/robots/transport/websocket"
	"github.com/wricardo/mcp-training/robots/warehouse/engine"
	"github.com/wricardo/mcp-training/robots/warehouse/service"
)

// maxScriptBytes bounds the body of a script run
const maxScriptBytes = 1 << 20

// Server represents the REST API server
type Server struct {
	service service.WarehouseService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil.
func NewServer(warehouseService service.WarehouseService, hub *websocket.Hub) *Server {
	s := &Server{
		service: warehouseService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/state", s.handleGetState).Methods("GET")
	api.HandleFunc("/sessions/{id}/reset", s.handleReset).Methods("POST")

	// Grid
	api.HandleFunc("/sessions/{id}/cells/{x}/{y}", s.handleGetCell).Methods("GET")
	api.HandleFunc("/sessions/{id}/cells/{x}/{y}", s.handleSetCell).Methods("PUT")

	// Robots
	api.HandleFunc("/sessions/{id}/robots/{robot}/commands", s.handleEnqueue).Methods("POST")
	api.HandleFunc("/sessions/{id}/robots/{robot}/commands", s.handlePrintCommands).Methods("GET")
	api.HandleFunc("/sessions/{id}/robots/{robot}/execute", s.handleExecute).Methods("POST")
	api.HandleFunc("/sessions/{id}/robots/{robot}/boxes", s.handleHowManyBoxes).Methods("GET")

	// History and scripts
	api.HandleFunc("/sessions/{id}/undo", s.handleUndo).Methods("POST")
	api.HandleFunc("/sessions/{id}/last-executed", s.handleLastExecuted).Methods("GET")
	api.HandleFunc("/sessions/{id}/script", s.handleRunScript).Methods("POST")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service and engine errors to HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidRobotID),
		errors.Is(err, engine.ErrIndexOutOfRange),
		errors.Is(err, engine.ErrNegativeBoxes),
		errors.Is(err, engine.ErrInvalidDimensions),
		errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrInvalidConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// intVar parses a numeric path variable
func intVar(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return value, nil
}

func (s *Server) broadcast(sessionID string, state *engine.Snapshot) {
	if s.hub != nil && state != nil {
		s.hub.BroadcastToSession(sessionID, state)
	}
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"`
	}

	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	configID := req.ConfigID
	if configID == "" {
		configID = req.ConfigName
	}

	session, err := s.service.CreateSession(r.Context(), configID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("[SESSION] created id=%s config=%s", session.ID, session.ConfigName)
	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort") // "created" or "accessed" (default)
	order := query.Get("order") // "asc" or "desc" (default)
	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}
		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	if l, err := strconv.Atoi(query.Get("limit")); err == nil && l > 0 && l < total {
		sessions = sessions[:l]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.service.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.GetState(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.Reset(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, state)
	log.Printf("[RESET] session=%s boxes=%d", sessionID, state.TotalBoxes)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Warehouse reset successfully",
		"state":   state,
	})
}

// Grid Handlers

func (s *Server) handleGetCell(w http.ResponseWriter, r *http.Request) {
	x, err := intVar(r, "x")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := intVar(r, "y")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cell, err := s.service.GetCell(r.Context(), mux.Vars(r)["id"], x, y)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cell)
}

func (s *Server) handleSetCell(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	x, err := intVar(r, "x")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := intVar(r, "y")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Boxes *int `json:"boxes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Boxes == nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: boxes is required")
		return
	}

	cell, err := s.service.SetCell(r.Context(), sessionID, x, y, *req.Boxes)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if state, err := s.service.GetState(r.Context(), sessionID); err == nil {
		s.broadcast(sessionID, state)
	}
	log.Printf("[CELL] session=%s (%d,%d)=%d", sessionID, x, y, cell.Boxes)

	respondJSON(w, http.StatusOK, cell)
}

// Robot Handlers

func (s *Server) handleEnqueue(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	robotID, err := intVar(r, "robot")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Kind    string `json:"kind"`
		X       int    `json:"x"`
		Y       int    `json:"y"`
		Boxes   int    `json:"boxes"`
		AtFront bool   `json:"at_front,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Enqueue(r.Context(), sessionID, service.EnqueueRequest{
		RobotID: robotID,
		Kind:    engine.CommandKind(req.Kind),
		X:       req.X,
		Y:       req.Y,
		Boxes:   req.Boxes,
		AtFront: req.AtFront,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if state, err := s.service.GetState(r.Context(), sessionID); err == nil {
		s.broadcast(sessionID, state)
	}

	where := "back"
	if result.AtFront {
		where = "front"
	}
	log.Printf("[ENQUEUE] session=%s robot=%d %s at=%s pending=%d", sessionID, robotID, result.Command, where, result.Pending)

	respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handlePrintCommands(w http.ResponseWriter, r *http.Request) {
	robotID, err := intVar(r, "robot")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.PrintCommands(r.Context(), mux.Vars(r)["id"], robotID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	robotID, err := intVar(r, "robot")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.Execute(r.Context(), sessionID, robotID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if result.Outcome == engine.OutcomeApplied {
		s.broadcast(sessionID, result.State)
		c := result.Command
		log.Printf("[EXECUTE] session=%s robot=%d %s (%d,%d) moved=%d/%d", sessionID, robotID, c.Kind, c.X, c.Y, c.Boxes, c.Requested)
	} else {
		log.Printf("[EXECUTE] session=%s robot=%d outcome=%s", sessionID, robotID, result.Outcome)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleHowManyBoxes(w http.ResponseWriter, r *http.Request) {
	robotID, err := intVar(r, "robot")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.HowManyBoxes(r.Context(), mux.Vars(r)["id"], robotID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// History and Script Handlers

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.Undo(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if result.Outcome == engine.OutcomeUndone {
		s.broadcast(sessionID, result.State)
		log.Printf("[UNDO] session=%s reverted=%q", sessionID, result.Command.String())
	} else {
		log.Printf("[UNDO] session=%s outcome=%s", sessionID, result.Outcome)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleLastExecuted(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.LastExecuted(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleRunScript accepts either {"script": "..."} JSON or a plain-text body
func (s *Server) handleRunScript(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	body, err := io.ReadAll(io.LimitReader(r.Body, maxScriptBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	text := string(body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Script string `json:"script"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		text = req.Script
	}
	if strings.TrimSpace(text) == "" {
		respondError(w, http.StatusBadRequest, "script is required")
		return
	}

	result, err := s.service.RunScript(r.Context(), sessionID, text)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, result.State)
	log.Printf("[SCRIPT] session=%s commands=%d executed=%d undone=%d errors=%d",
		sessionID, result.Stats.Commands, result.Stats.Executed, result.Stats.Undone, result.Stats.Errors)

	status := http.StatusOK
	if result.Error != "" {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, result)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		name = strings.TrimSuffix(name, ext)
	}

	config, err := s.service.LoadConfig(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var layout engine.LayoutConfig
	if err := json.NewDecoder(r.Body).Decode(&layout); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if layout.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	if err := s.service.SaveConfig(r.Context(), layout.Name, &layout); err != nil {
		respondError(w, statusFor(err), fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": layout.Name,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}
	if s.hub == nil {
		http.Error(w, "live updates disabled", http.StatusServiceUnavailable)
		return
	}

	if _, err := s.service.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
