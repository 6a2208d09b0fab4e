package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/apexautolab/leadapi/internal/auth"
	"github.com/apexautolab/leadapi/internal/domain/lead"
)

type leadRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Car     string `json:"car"`
	Msg     string `json:"msg"`
	Message string `json:"message"`
	Page    string `json:"page"`
	UA      string `json:"ua"`
}

func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	// The public form sends "msg"; older clients send "message".
	message := req.Msg
	if message == "" {
		message = req.Message
	}

	created, err := s.leads.Create(r.Context(), lead.CreateRequest{
		Name:    req.Name,
		Phone:   req.Phone,
		Car:     req.Car,
		Message: message,
		Page:    req.Page,
		UA:      req.UA,
	})
	if errors.Is(err, lead.ErrInvalidPhone) {
		writeError(w, http.StatusBadRequest, "Invalid phone")
		return
	}
	if err != nil {
		s.logger.Error("lead creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": created.ID})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	token, err := s.sessions.Login(req.Username, req.Password)
	if errors.Is(err, auth.ErrNotConfigured) {
		s.logger.Error("admin login attempted without configured credentials")
		writeError(w, http.StatusInternalServerError, "Admin credentials missing")
		return
	}
	if errors.Is(err, auth.ErrBadCredentials) {
		writeError(w, http.StatusUnauthorized, "Bad credentials")
		return
	}
	if err != nil {
		s.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Non-numeric or absent limit falls back to the service default.
	limit, _ := strconv.Atoi(query.Get("limit"))

	rows, err := s.leads.List(r.Context(), lead.ListOptions{
		Status: query.Get("status"),
		Query:  query.Get("q"),
		Limit:  limit,
	})
	if err != nil {
		s.logger.Error("lead listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if rows == nil {
		rows = []lead.LeadRef{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	row, err := s.leads.Get(r.Context(), id)
	if errors.Is(err, lead.ErrLeadNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		s.logger.Error("lead fetch failed", "lead_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"row": row})
}

type updateLeadRequest struct {
	Status       *string `json:"status"`
	InternalNote *string `json:"internal_note"`
}

func (s *Server) handleUpdateLead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	var req updateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	row, err := s.leads.Update(r.Context(), id, lead.UpdateRequest{
		Status:       req.Status,
		InternalNote: req.InternalNote,
	})
	if errors.Is(err, lead.ErrLeadNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		s.logger.Error("lead update failed", "lead_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"row": row})
}
