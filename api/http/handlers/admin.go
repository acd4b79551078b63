package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/mockinterview/api/http/presenter"
	"github.com/artem13815/mockinterview/pkg/admin"
	"github.com/artem13815/mockinterview/pkg/auth"
	"github.com/artem13815/mockinterview/pkg/interview"
)

// AdminHandler serves the administrative endpoints. Routes are expected to sit
// behind jwt.RequireAdmin.
type AdminHandler struct {
	useCase admin.UseCase
	log     *zap.Logger
}

func NewAdminHandler(useCase admin.UseCase, log *zap.Logger) *AdminHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminHandler{useCase: useCase, log: log}
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// ListInterviews lists every session with its owner's email.
// @Summary All interviews
// @Tags    admin
// @Produce json
// @Param   limit  query int false "page size"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {array} interview.Overview
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /admin/all-interviews [get]
func (h *AdminHandler) ListInterviews(c *fiber.Ctx) error {
	limit, offset := page(c)
	items, err := h.useCase.ListInterviews(c.UserContext(), limit, offset)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// ListUsers
// @Summary All users
// @Tags    admin
// @Produce json
// @Param   limit  query int false "page size"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {array} auth.User
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	limit, offset := page(c)
	users, err := h.useCase.ListUsers(c.UserContext(), limit, offset)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, users)
}

// UpdateRole
// @Summary Change user role
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   id    path string            true "user id"
// @Param   input body updateRoleRequest true "new role (user or admin)"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /admin/users/{id} [put]
func (h *AdminHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid user id")
	}
	var req updateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.useCase.UpdateRole(c.UserContext(), id, req.Role); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "role updated"})
}

// DeleteUser removes a user together with their interviews.
// @Summary Delete user
// @Tags    admin
// @Param   id path string true "user id"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid user id")
	}
	if err := h.useCase.DeleteUser(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "user deleted"})
}

// UserInterviews
// @Summary Interviews of one user
// @Tags    admin
// @Produce json
// @Param   id path string true "user id"
// @Security BearerAuth
// @Success 200 {object} admin.UserInterviews
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /admin/users/{id}/interviews [get]
func (h *AdminHandler) UserInterviews(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid user id")
	}
	limit, offset := page(c)
	res, err := h.useCase.UserInterviews(c.UserContext(), id, limit, offset)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// DeleteInterview
// @Summary Delete interview
// @Tags    admin
// @Param   id path string true "interview id"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /admin/interviews/{id} [delete]
func (h *AdminHandler) DeleteInterview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid interview id")
	}
	if err := h.useCase.DeleteInterview(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "interview deleted"})
}

func (h *AdminHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, admin.ErrInvalidRole):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "user not found")
	case errors.Is(err, interview.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "interview not found")
	}
	h.log.Error("admin request failed", zap.String("path", c.Path()), zap.Error(err))
	return presenter.Error(c, http.StatusInternalServerError, "internal error")
}
