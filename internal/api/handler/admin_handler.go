package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentpool/careers-portal/internal/api/metrics"
	"github.com/talentpool/careers-portal/internal/core/domain"
	"github.com/talentpool/careers-portal/internal/core/ports"
)

// AdminHandler handles the ADMIN-only HR management endpoints. Route guards
// (Auth + RBAC) run before any of these methods.
type AdminHandler struct {
	userService ports.UserService
}

func NewAdminHandler(userService ports.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// ListHRUsers returns all HR accounts, newest first.
//
// @Summary      List HR users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listHRUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/hr-users [get]
func (h *AdminHandler) ListHRUsers(c echo.Context) error {
	if _, err := ctxSession(c); err != nil {
		return err
	}

	users, err := h.userService.ListHRUsers(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, listHRUsersResponse{Users: users})
}

// ChangeHRPassword resets the password of the HR account identified by the
// path parameter.
//
// @Summary      Reset an HR user's password
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Target user id"
// @Param        body  body      changePasswordRequest  true  "New password"
// @Success      200   {object}  changePasswordResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/hr-users/{id}/password [put]
func (h *AdminHandler) ChangeHRPassword(c echo.Context) error {
	if _, err := ctxSession(c); err != nil {
		return err
	}

	id := c.Param("id")

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.userService.ChangeHRPassword(c.Request().Context(), id, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.PasswordResetsTotal.WithLabelValues("not_found").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		case errors.Is(err, domain.ErrWrongRole):
			metrics.PasswordResetsTotal.WithLabelValues("wrong_role").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "target user is not an HR account"})
		case errors.Is(err, domain.ErrWeakPassword):
			metrics.PasswordResetsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, changePasswordResponse{
		Message: "password updated",
		User:    changedUser{ID: user.ID, Email: user.Email},
	})
}
