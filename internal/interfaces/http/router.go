package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CuentaCorriente-api/internal/application/accounts"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/auth"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/customers"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/usecase"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	MerchantUC   *usecase.MerchantUseCase
	MembershipUC *customers.MembershipUseCase
	AccountUC    *accounts.AccountUseCase
	StatementUC  *accounts.StatementUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register-merchant", authHandler.RegisterMerchant)
	authGroup.Post("/register-customer", authHandler.RegisterCustomer)
	authGroup.Post("/login", authHandler.Login)

	// Merchants (listado y detalle públicos: alimentan el selector de registro)
	merchantHandler := NewMerchantHandler(deps.MerchantUC)
	merchants := api.Group("/merchants")
	merchants.Get("/", merchantHandler.List)
	merchants.Get("/:id", merchantHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/change-password", authHandler.ChangePassword)

	// Perfil del comercio propio (solo admin)
	protected.Put("/merchants/me", RequireRole(entity.RoleAdmin), merchantHandler.Update)

	// Vinculaciones: gestión del comercio (admin/staff)
	membershipHandler := NewMembershipHandler(deps.MembershipUC)
	staffOnly := RequireRole(entity.RoleAdmin, entity.RoleStaff)
	memberships := protected.Group("/memberships", staffOnly)
	memberships.Post("/", membershipHandler.Create)
	memberships.Get("/", membershipHandler.List)
	memberships.Get("/:id", membershipHandler.GetByID)
	memberships.Put("/:id", membershipHandler.Update)
	memberships.Delete("/:id", membershipHandler.Delete)
	memberships.Post("/:id/approve", membershipHandler.Approve)
	memberships.Post("/:id/reject", membershipHandler.Reject)

	// Cuentas corrientes
	accountHandler := NewAccountHandler(deps.AccountUC, deps.StatementUC)
	memberships.Post("/:membershipId/account", accountHandler.Open)

	accGroup := protected.Group("/accounts")
	accGroup.Get("/:id/balance", accountHandler.GetBalance)
	accGroup.Get("/:id/movements", accountHandler.ListMovements)
	accGroup.Get("/:id/statement", accountHandler.Statement)
	accGroup.Put("/:id/credit-limit", staffOnly, accountHandler.SetCreditLimit)
	accGroup.Post("/:id/block", staffOnly, accountHandler.Block)
	accGroup.Post("/:id/unblock", staffOnly, accountHandler.Unblock)

	// Movimientos (solo el comercio asienta y marca pagos)
	movementHandler := NewMovementHandler(deps.AccountUC)
	accGroup.Post("/:id/movements", staffOnly, movementHandler.Register)
	protected.Post("/movements/:id/pay", staffOnly, movementHandler.MarkPaid)

	// Dashboard del cliente
	protected.Get("/me/memberships", RequireRole(entity.RoleCustomer), membershipHandler.ListMine)
}
