// Package httpapi exposes the user service over HTTP/JSON under
// /api/v1/user.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/server/auth"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/dmitrijs2005/gophwallet/internal/server/services"
)

// UserService is the business API the handlers call; *services.UserService
// implements it.
type UserService interface {
	Signup(ctx context.Context, in services.SignupInput) (*services.SignupResult, error)
	Signin(ctx context.Context, in services.SigninInput) (string, error)
	UpdateProfile(ctx context.Context, userID string, upd services.ProfileUpdate) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context, filter string) ([]models.UserSummary, error)
}

type Handler struct {
	users  UserService
	logger logging.Logger
}

func NewHandler(users UserService, l logging.Logger) *Handler {
	return &Handler{users: users, logger: l.With("module", "http_handler")}
}

type signupRequest struct {
	UserName  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type signupResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type signinRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// updateRequest is the full set of fields a profile update may carry.
// Anything else in the body is rejected.
type updateRequest struct {
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	ID        string `json:"_id"`
	UserName  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type listResponse struct {
	Users []userResponse `json:"users"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.users.Signup(r.Context(), services.SignupInput{
		UserName:  req.UserName,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, signupResponse{Message: "User created successfully", Token: res.Token})
}

func (h *Handler) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := h.users.Signin(r.Context(), services.SigninInput{UserName: req.UserName, Password: req.Password})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, common.ErrAuthentication)
		return
	}

	var req updateRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		h.writeError(w, r, err)
		return
	}

	err := h.users.UpdateProfile(r.Context(), userID, services.ProfileUpdate{
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Details updated successfully"})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.ListUsers(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := listResponse{Users: make([]userResponse, 0, len(list))}
	for _, u := range list {
		out.Users = append(out.Users, userResponse{ID: u.ID, UserName: u.UserName, FirstName: u.FirstName, LastName: u.LastName})
	}
	respondWithJSON(w, http.StatusOK, out)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, common.ErrAuthentication)
		return
	}

	u, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, userResponse{ID: u.ID, UserName: u.UserName, FirstName: u.FirstName, LastName: u.LastName})
}

// decodeJSON reads one JSON object from the body. Syntax and type errors are
// reported as validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, strict bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return common.Validationf("invalid request body: %v", err)
	}
	return nil
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrDuplicateUser):
		return http.StatusConflict
	case errors.Is(err, common.ErrUserNotFound), errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrAuthentication):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		msg = common.ErrorInternal.Error()
	}
	respondWithJSON(w, code, messageResponse{Message: msg})
}
