package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/julianstephens/skateday/internal/auth"
	"github.com/julianstephens/skateday/internal/exchange"
	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/storage"
)

type okResponse struct {
	OK     bool  `json:"ok"`
	UserID int64 `json:"userId,omitempty"`
	Days   int   `json:"days,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var resp models.StatusResponse
	resp.DB.Type = string(s.kind)
	resp.Auth.SecretSet = s.secretSet
	resp.Auth.Providers = Providers
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.Error("failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	user, err := s.store.CreateUser(models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, storage.ErrUserExists) {
		writeError(w, http.StatusConflict, "Email exists")
		return
	}
	if err != nil {
		s.log.Error("failed to create user", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	s.log.Info("user registered", "user_id", user.ID)
	writeJSON(w, http.StatusOK, okResponse{OK: true, UserID: user.ID})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing")
		return
	}

	user, err := s.store.GetUserByEmail(req.Email)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		s.log.Error("failed to look up user", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		s.log.Error("failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	s.log.Info("user logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, models.LoginResponse{Token: token, UserID: user.ID, Email: user.Email})
}

func (s *Server) handleGetDays(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	days, err := s.store.GetDays(claims.UserID)
	if err != nil {
		s.log.Error("failed to load days", "user_id", claims.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if days == nil {
		days = []models.Day{}
	}
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handlePutDays(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}

	days, err := exchange.ParseSync(body)
	if err != nil {
		s.log.Warn("rejected days payload", "user_id", claims.UserID, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.ReplaceDays(claims.UserID, days); err != nil {
		s.log.Error("failed to save days", "user_id", claims.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true, Days: len(days)})
}
