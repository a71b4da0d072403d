package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/weeklist/internal/domain"
	"github.com/msomdec/weeklist/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// statusResponse is the envelope used by the signup and login routes.
type statusResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Token   string   `json:"token,omitempty"`
	User    *UserDTO `json:"user,omitempty"`
}

func writeFailed(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, statusResponse{Status: "FAILED", Message: message})
}

// HandleSignup creates an account and returns a token for it.
// POST /signup
// Request:  {"fullname":"...","email":"...","password":"...","age":0,"gender":"...","mobile":"..."}
// Response: {"status":"SUCCESS","message":"...","token":"...","user":{...}}
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullname"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Age      int    `json:"age"`
		Gender   string `json:"gender"`
		Mobile   string `json:"mobile"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.auth.Signup(r.Context(), service.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Gender:   req.Gender,
		Mobile:   req.Mobile,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeFailed(w, http.StatusConflict, "An account with that email already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			writeFailed(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("signup user", "error", err)
			writeFailed(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	dto := toUserDTO(user)
	writeJSON(w, http.StatusCreated, statusResponse{
		Status:  "SUCCESS",
		Message: "User created successfully",
		Token:   token,
		User:    &dto,
	})
}

// HandleLogin exchanges credentials for a token.
// POST /login
// Request:  {"email":"...","password":"..."}
// Response: {"status":"SUCCESS","message":"...","token":"..."}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeFailed(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeFailed(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		slog.Error("login user", "error", err)
		writeFailed(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "SUCCESS",
		Message: "You've logged in successfully!",
		Token:   token,
	})
}

// HandleProtected confirms the caller holds a valid token.
// GET /protected
func (h *AuthHandler) HandleProtected(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "You have access to this protected route")
}
