package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/application/usecase"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
)

// ProfileHandler maneja las peticiones HTTP de perfiles: vista de información,
// edición de etiqueta/PIN, asignación, liberación y reconciliación (protegido).
type ProfileHandler struct {
	accounts    *usecase.AccountUseCase
	assignments *usecase.AssignmentUseCase
}

// NewProfileHandler construye el handler.
func NewProfileHandler(accounts *usecase.AccountUseCase, assignments *usecase.AssignmentUseCase) *ProfileHandler {
	return &ProfileHandler{accounts: accounts, assignments: assignments}
}

// Info godoc
// @Summary      Vista unida del perfil (credenciales, servicio, asignación activa)
// @Tags         profiles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del perfil"
// @Success      200  {object}  dto.ProfileInfoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profiles/{id} [get]
func (h *ProfileHandler) Info(c *fiber.Ctx) error {
	out, err := h.assignments.ProfileInfo(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "perfil no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar etiqueta y/o PIN del perfil
// @Tags         profiles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del perfil"
// @Param        body  body  dto.UpdateProfileRequest  true  "label y/o pin"
// @Success      200   {object}  dto.ProfileResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/profiles/{id} [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.accounts.UpdateProfile(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotEditable) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PROFILE_LOCKED", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "perfil no encontrado"})
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar el perfil a un cliente
// @Tags         profiles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del perfil"
// @Param        body  body  dto.AssignRequest  true  "customer_id; expires_at y price opcionales"
// @Success      201   {object}  dto.AssignmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/profiles/{id}/assign [post]
func (h *ProfileHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CustomerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id es requerido"})
	}
	out, err := h.assignments.Assign(c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "perfil no encontrado"})
		case errors.Is(err, domain.ErrProfileOccupied):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PROFILE_OCCUPIED", Message: err.Error()})
		case errors.Is(err, domain.ErrProfileNotEditable):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PROFILE_LOCKED", Message: err.Error()})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Unassign godoc
// @Summary      Liberar el perfil (elimina su asignación activa)
// @Tags         profiles
// @Security     Bearer
// @Param        id   path  string  true  "ID del perfil"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/profiles/{id}/unassign [post]
func (h *ProfileHandler) Unassign(c *fiber.Ctx) error {
	if err := h.assignments.Unassign(c.Params("id")); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "perfil no encontrado"})
		case errors.Is(err, domain.ErrProfileNotOccupied):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PROFILE_FREE", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reconcile godoc
// @Summary      Reconciliar flags de ocupación contra el libro de asignaciones
// @Tags         profiles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/profiles/reconcile [post]
func (h *ProfileHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.assignments.Reconcile()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
