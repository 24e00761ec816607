package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CuentaCorriente-api/internal/application/customers"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/dto"
)

// MembershipHandler maneja el ciclo de vida de la vinculación cliente-comercio.
type MembershipHandler struct {
	uc *customers.MembershipUseCase
}

// NewMembershipHandler construye el handler de vinculaciones.
func NewMembershipHandler(uc *customers.MembershipUseCase) *MembershipHandler {
	return &MembershipHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de cliente por el comercio
// @Description  Crea la vinculación ya activa con su cuenta corriente; si el email es nuevo, siembra la contraseña con el DNI
// @Tags         memberships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateMembershipRequest  true  "datos del cliente"
// @Success      201   {object}  dto.MembershipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/memberships [post]
func (h *MembershipHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMembershipRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateByMerchant(c.Context(), GetMerchantID(c), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar vinculaciones del comercio
// @Description  Filtrable por estado (status=1 pendientes, 2 activas, 3 rechazadas)
// @Tags         memberships
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  int  false  "filtro de estado"
// @Param        limit   query  int  false  "máximo de resultados (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.MembershipResponse
// @Router       /api/memberships [get]
func (h *MembershipHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	var status *int
	if raw := c.Query("status"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status inválido"})
		}
		status = &n
	}
	out, err := h.uc.ListByMerchant(c.Context(), GetMerchantID(c), status, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener vinculación
// @Tags         memberships
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la vinculación"
// @Success      200  {object}  dto.MembershipResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/memberships/{id} [get]
func (h *MembershipHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"), GetMerchantID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar vinculación
// @Description  Snapshot de contacto, alias y notas internas del comercio
// @Tags         memberships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID de la vinculación"
// @Param        body  body  dto.UpdateMembershipRequest  true  "datos de contacto"
// @Success      200   {object}  dto.MembershipResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/memberships/{id} [put]
func (h *MembershipHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMembershipRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), GetMerchantID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Baja de vinculación
// @Description  Soft delete de la vinculación y su cuenta; los movimientos se conservan
// @Tags         memberships
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la vinculación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/memberships/{id} [delete]
func (h *MembershipHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetMerchantID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Approve godoc
// @Summary      Aprobar vinculación pendiente
// @Description  Transición Pendiente → Activo; crea la cuenta corriente
// @Tags         memberships
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la vinculación"
// @Success      200  {object}  dto.MembershipResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/memberships/{id}/approve [post]
func (h *MembershipHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), c.Params("id"), GetMerchantID(c), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar vinculación
// @Description  Transición a Rechazado; jamás crea cuenta corriente
// @Tags         memberships
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la vinculación"
// @Success      200  {object}  dto.MembershipResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/memberships/{id}/reject [post]
func (h *MembershipHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.Context(), c.Params("id"), GetMerchantID(c), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Mis vinculaciones (cliente)
// @Description  Dashboard multi-comercio del cliente: estado y saldo por comercio
// @Tags         memberships
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.MembershipForUserResponse
// @Router       /api/me/memberships [get]
func (h *MembershipHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListByUser(c.Context(), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
