package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CuentaCorriente-api/internal/application/accounts"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/dto"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
)

// AccountHandler maneja la cuenta corriente: apertura, saldo, límite,
// bloqueo, movimientos y resumen PDF.
type AccountHandler struct {
	uc          *accounts.AccountUseCase
	statementUC *accounts.StatementUseCase
}

// NewAccountHandler construye el handler de cuentas.
func NewAccountHandler(uc *accounts.AccountUseCase, statementUC *accounts.StatementUseCase) *AccountHandler {
	return &AccountHandler{uc: uc, statementUC: statementUC}
}

// actorContext resuelve quién consulta: un customer autoriza por userID,
// admin/staff por su merchantID.
func actorContext(c *fiber.Ctx) (merchantID, userID string) {
	if GetRole(c) == entity.RoleCustomer {
		return "", GetUserID(c)
	}
	return GetMerchantID(c), ""
}

// Open godoc
// @Summary      Abrir cuenta corriente
// @Description  Idempotente; exige vinculación activa
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        membershipId  path  string  true  "ID de la vinculación"
// @Success      201  {object}  entity.Account
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/memberships/{membershipId}/account [post]
func (h *AccountHandler) Open(c *fiber.Ctx) error {
	out, err := h.uc.Open(c.Context(), c.Params("membershipId"), GetMerchantID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBalance godoc
// @Summary      Saldo de la cuenta
// @Description  Saldo y crédito disponible recalculados desde el log de movimientos
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/balance [get]
func (h *AccountHandler) GetBalance(c *fiber.Ctx) error {
	merchantID, userID := actorContext(c)
	out, err := h.uc.GetBalance(c.Context(), c.Params("id"), merchantID, userID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// SetCreditLimit godoc
// @Summary      Actualizar límite de crédito
// @Tags         accounts
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID de la cuenta"
// @Param        body  body  dto.SetCreditLimitRequest  true  "nuevo límite (>= 0)"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/credit-limit [put]
func (h *AccountHandler) SetCreditLimit(c *fiber.Ctx) error {
	var in dto.SetCreditLimitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetCreditLimit(c.Context(), c.Params("id"), GetMerchantID(c), in.CreditLimit); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Block godoc
// @Summary      Bloquear cuenta
// @Description  Los débitos nuevos se rechazan; pagos y consultas siguen funcionando
// @Tags         accounts
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/block [post]
func (h *AccountHandler) Block(c *fiber.Ctx) error {
	if err := h.uc.Block(c.Context(), c.Params("id"), GetMerchantID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Unblock godoc
// @Summary      Desbloquear cuenta
// @Tags         accounts
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/unblock [post]
func (h *AccountHandler) Unblock(c *fiber.Ctx) error {
	if err := h.uc.Unblock(c.Context(), c.Params("id"), GetMerchantID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Log completo de la cuenta en orden cronológico ascendente
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      200  {array}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/movements [get]
func (h *AccountHandler) ListMovements(c *fiber.Ctx) error {
	merchantID, userID := actorContext(c)
	out, err := h.uc.ListMovements(c.Context(), c.Params("id"), merchantID, userID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Statement godoc
// @Summary      Resumen de cuenta en PDF
// @Tags         accounts
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/statement [get]
func (h *AccountHandler) Statement(c *fiber.Ctx) error {
	merchantID, userID := actorContext(c)
	pdfBytes, err := h.statementUC.Generate(c.Context(), c.Params("id"), merchantID, userID)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resumen-cuenta.pdf"`)
	return c.Send(pdfBytes)
}
