package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CuentaCorriente-api/internal/application/dto"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain"
)

// mapeo de errores de dominio a status + código HTTP. De acá sale toda
// respuesta de error de los handlers; lo que no matchea es 500 INTERNAL.
var domainErrorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrMerchantEmailExists, fiber.StatusConflict, "MERCHANT_EMAIL_EXISTS"},
	{domain.ErrUserEmailExists, fiber.StatusConflict, "USER_EMAIL_EXISTS"},
	{domain.ErrDuplicateMembership, fiber.StatusConflict, "DUPLICATE_MEMBERSHIP"},
	{domain.ErrAlreadyApproved, fiber.StatusConflict, "ALREADY_APPROVED"},
	{domain.ErrAlreadyPaid, fiber.StatusConflict, "ALREADY_PAID"},
	{domain.ErrMembershipNotActive, fiber.StatusConflict, "MEMBERSHIP_NOT_ACTIVE"},
	{domain.ErrMembershipRejected, fiber.StatusConflict, "MEMBERSHIP_REJECTED"},
	{domain.ErrAccountBlocked, fiber.StatusConflict, "ACCOUNT_BLOCKED"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrAccountPending, fiber.StatusForbidden, "ACCOUNT_PENDING"},
	{domain.ErrAccountDeactivated, fiber.StatusForbidden, "ACCOUNT_DEACTIVATED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// respondDomainError responde el error del caso de uso con el status que
// corresponde. El mensaje es el del sentinel de dominio (en castellano).
func respondDomainError(c *fiber.Ctx, err error) error {
	for _, m := range domainErrorStatus {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
