package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/danielrhuynh/cs-446-ece-452/internal/api/apierr"
	"github.com/danielrhuynh/cs-446-ece-452/internal/api/request"
	"github.com/danielrhuynh/cs-446-ece-452/internal/api/response"
	"github.com/danielrhuynh/cs-446-ece-452/internal/services/matchmaking"
)

// SessionHandler handles the session matchmaking endpoints
type SessionHandler struct {
	matchmaking *matchmaking.Controller
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(matchmaking *matchmaking.Controller) *SessionHandler {
	return &SessionHandler{matchmaking: matchmaking}
}

// Create handles POST /sessions/create
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if strings.TrimSpace(req.DeviceID) == "" || strings.TrimSpace(req.DisplayName) == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("device_id and display_name are required"))
		return
	}

	session, err := h.matchmaking.Create(r.Context(), req.DeviceID, req.DisplayName, req.DeviceToken)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Join handles POST /sessions/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if strings.TrimSpace(req.DeviceID) == "" ||
		strings.TrimSpace(req.DisplayName) == "" ||
		strings.TrimSpace(req.SessionID) == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("device_id, display_name and session_id are required"))
		return
	}

	session, err := h.matchmaking.Join(r.Context(), req.DeviceID, req.DisplayName, req.DeviceToken, req.SessionID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Get handles GET /sessions/{code}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	session, err := h.matchmaking.Get(r.Context(), code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionWithPlayersFromModel(session))
}
