package handler

import "github.com/talentpool/careers-portal/internal/core/domain"

// --- Request / Response types ---

type listHRUsersResponse struct {
	Users []*domain.User `json:"users"`
}

type changePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

type changedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type changePasswordResponse struct {
	Message string      `json:"message"`
	User    changedUser `json:"user"`
}
