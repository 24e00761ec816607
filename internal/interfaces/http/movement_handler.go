package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CuentaCorriente-api/internal/application/accounts"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/dto"
)

// MovementHandler maneja el alta de movimientos y la marca de pago.
type MovementHandler struct {
	uc *accounts.AccountUseCase
}

// NewMovementHandler construye el handler de movimientos.
func NewMovementHandler(uc *accounts.AccountUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar movimiento
// @Description  Asienta un debe o haber en el log de la cuenta; importe siempre positivo
// @Tags         movements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID de la cuenta"
// @Param        body  body  dto.RegisterMovementRequest  true  "tipo, importe, detalle, vencimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterMovement(c.Context(), c.Params("id"), GetMerchantID(c), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarkPaid godoc
// @Summary      Marcar movimiento como pagado
// @Description  Única mutación permitida sobre un asiento; idempotencia negativa: ya pagado responde 409
// @Tags         movements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.MarkPaidRequest  false  "notas del pago"
// @Success      200   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/pay [post]
func (h *MovementHandler) MarkPaid(c *fiber.Ctx) error {
	var in dto.MarkPaidRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.MarkPaid(c.Context(), c.Params("id"), GetMerchantID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
