package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/shoppal/internal/common"
)

const maxRequestBytes = 1 << 20

const (
	msgInvalidCredentials = "Invalid email or password"
	msgMalformedRequest   = "malformed request"
	msgInternalError      = "internal error"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token,omitempty"`
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		s.metrics.loginAttempt(resultMalformed)
		http.Error(w, msgMalformedRequest, http.StatusBadRequest)
		return
	}

	result, err := s.users.Login(ctx, req.Email, []byte(req.Password))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.metrics.loginAttempt(resultRejected)
			s.logger.Info(ctx, "login rejected", "email", req.Email)
			http.Error(w, msgInvalidCredentials, http.StatusBadRequest)
			return
		}
		s.metrics.loginAttempt(resultError)
		s.logger.Error(ctx, "login failed", "email", req.Email, "error", err)
		http.Error(w, msgInternalError, http.StatusInternalServerError)
		return
	}

	s.metrics.loginAttempt(resultSuccess)
	s.logger.Info(ctx, "login successful", "email", result.User.Email)

	writeJSON(w, http.StatusOK, profileResponse{
		UserID: result.User.ID,
		Email:  result.User.Email,
		Token:  result.Token,
	})
}

func (s *HTTPServer) me(w http.ResponseWriter, r *http.Request) {
	c := claimsFromContext(r.Context())
	writeJSON(w, http.StatusOK, profileResponse{UserID: c.UserID, Email: c.Email})
}

func (s *HTTPServer) ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
