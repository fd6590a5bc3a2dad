package handler

import "github.com/coderun/account-service/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type signupRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userResponse is the outward account representation: no password hash, no
// security counter.
type userResponse struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Active  bool   `json:"active"`
	Profile string `json:"profile,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Active:  u.Active,
		Profile: u.Profile,
	}
}

type loginResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token,omitempty"`
}

// dataResponse is the {"data": ...} acknowledgment envelope.
type dataResponse struct {
	Data string `json:"data"`
}

// sendResponse acknowledges a password-reset dispatch.
type sendResponse struct {
	Send string `json:"send"`
}
