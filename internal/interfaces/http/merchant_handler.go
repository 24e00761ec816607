package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CuentaCorriente-api/internal/application/dto"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/usecase"
)

// MerchantHandler maneja el perfil de comercio.
type MerchantHandler struct {
	uc *usecase.MerchantUseCase
}

// NewMerchantHandler construye el handler de comercios.
func NewMerchantHandler(uc *usecase.MerchantUseCase) *MerchantHandler {
	return &MerchantHandler{uc: uc}
}

// List godoc
// @Summary      Listar comercios
// @Description  Listado público para el selector de registro de clientes
// @Tags         merchants
// @Produce      json
// @Param        limit   query  int  false  "máximo de resultados (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.MerchantResponse
// @Router       /api/merchants [get]
func (h *MerchantHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.List(page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener comercio
// @Tags         merchants
// @Produce      json
// @Param        id  path  string  true  "ID del comercio"
// @Success      200  {object}  dto.MerchantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/merchants/{id} [get]
func (h *MerchantHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar comercio
// @Description  Contacto y preferencias de notificación del comercio propio
// @Tags         merchants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateMerchantRequest  true  "datos del comercio"
// @Success      200   {object}  dto.MerchantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/merchants/me [put]
func (h *MerchantHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMerchantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetMerchantID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
