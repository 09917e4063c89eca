package mockapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/taskbench/taskbench-go/internal/api"
	"github.com/taskbench/taskbench-go/internal/domain"
)

var validate = validator.New()

// Register handles POST user/register/.
// A taken email is a 400, same as any other bad registration input.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	input := domain.UserCreate{Email: req.Email, Password: req.Password}
	if err := validate.Struct(input); err != nil {
		badRequest(w, err.Error())
		return
	}

	user, err := s.store.CreateUser(req.Email, req.Password)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	access, refresh, err := s.jwtManager.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue tokens")
		return
	}
	writeJSON(w, http.StatusCreated, api.RegisterResponse{Access: access, Refresh: refresh})
}

// Login handles POST user/login/.
// Unknown email and wrong password are indistinguishable: both 400.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user, ok := s.store.Authenticate(req.Email, req.Password)
	if !ok {
		badRequest(w, "invalid email or password")
		return
	}

	access, refresh, err := s.jwtManager.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue tokens")
		return
	}
	writeJSON(w, http.StatusOK, api.LoginResponse{UserID: user.ID, Access: access, Refresh: refresh})
}

// Refresh handles POST token/refresh/. A valid refresh credential yields a
// fully new pair; anything else is a 401.
func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	var req api.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	userID, err := s.jwtManager.ValidateRefreshToken(req.Refresh)
	if err != nil {
		unauthorized(w, "invalid or expired refresh token")
		return
	}
	user, ok := s.store.UserByID(userID)
	if !ok {
		unauthorized(w, "unknown account")
		return
	}

	access, refresh, err := s.jwtManager.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue tokens")
		return
	}
	writeJSON(w, http.StatusOK, api.RefreshResponse{UserID: user.ID, Access: access, Refresh: refresh})
}

// ChangePassword handles PATCH user/password/.
func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}

	var req api.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	input := domain.PasswordChange{OldPassword: req.OldPassword, NewPassword: req.NewPassword}
	if err := validate.Struct(input); err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.store.SetPassword(userID, req.OldPassword, req.NewPassword); err != nil {
		badRequest(w, err.Error())
		return
	}
	noContent(w)
}
