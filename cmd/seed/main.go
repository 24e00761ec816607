// seed puebla la base con datos de demostración: un comercio con su admin,
// un cliente con la vinculación activa y algunos movimientos de ejemplo.
//
// Uso: go run ./cmd/seed
// Idempotente: si el comercio de demo ya existe no escribe nada.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
	"github.com/jhoicas/CuentaCorriente-api/internal/infrastructure/postgres"
	"github.com/jhoicas/CuentaCorriente-api/pkg/config"
)

const (
	demoMerchantEmail = "demo@almacendonarmando.com.ar"
	demoAdminEmail    = "admin@almacendonarmando.com.ar"
	demoCustomerEmail = "cliente@example.com"
	demoCustomerDNI   = "30123456"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	merchantRepo := postgres.NewMerchantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)

	existing, err := merchantRepo.GetByEmail(demoMerchantEmail)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Consultar comercio demo: %v\n", err)
		os.Exit(1)
	}
	if existing != nil {
		fmt.Println("El comercio de demostración ya existe; nada para hacer.")
		return
	}

	now := time.Now()
	merchant := &entity.Merchant{
		ID:                 uuid.New().String(),
		Name:               "Almacén Don Armando",
		Email:              demoMerchantEmail,
		Phone:              "+54 11 4555-0000",
		Address:            "Av. Rivadavia 1234, CABA",
		EmailNotifications: true,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := merchantRepo.Create(merchant); err != nil {
		fmt.Fprintf(os.Stderr, "Crear comercio: %v\n", err)
		os.Exit(1)
	}

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.DefaultCost)
	admin := &entity.User{
		ID:           uuid.New().String(),
		MerchantID:   &merchant.ID,
		Email:        demoAdminEmail,
		PasswordHash: string(adminHash),
		Name:         "Armando Pérez",
		Role:         entity.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(admin); err != nil {
		fmt.Fprintf(os.Stderr, "Crear admin: %v\n", err)
		os.Exit(1)
	}

	// Cliente dado de alta por el comercio: contraseña inicial = DNI.
	customerHash, _ := bcrypt.GenerateFromPassword([]byte(demoCustomerDNI), bcrypt.DefaultCost)
	customer := &entity.User{
		ID:           uuid.New().String(),
		Email:        demoCustomerEmail,
		PasswordHash: string(customerHash),
		Name:         "Juana Gómez",
		Role:         entity.RoleCustomer,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(customer); err != nil {
		fmt.Fprintf(os.Stderr, "Crear cliente: %v\n", err)
		os.Exit(1)
	}

	membership := &entity.Membership{
		ID:         uuid.New().String(),
		UserID:     customer.ID,
		MerchantID: merchant.ID,
		FirstName:  "Juana",
		LastName:   "Gómez",
		Email:      demoCustomerEmail,
		Phone:      "+54 11 6555-1111",
		TaxID:      demoCustomerDNI,
		Status:     entity.StatusActive,
		Origin:     entity.OriginAdmin,
		ApprovedAt: &now,
		ApprovedBy: &admin.ID,
		Alias:      "Juana del 3°B",
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := membershipRepo.Create(membership); err != nil {
		fmt.Fprintf(os.Stderr, "Crear vinculación: %v\n", err)
		os.Exit(1)
	}

	account := &entity.Account{
		ID:           uuid.New().String(),
		MembershipID: membership.ID,
		CreditLimit:  decimal.NewFromInt(50000),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := accountRepo.Create(account); err != nil {
		fmt.Fprintf(os.Stderr, "Crear cuenta: %v\n", err)
		os.Exit(1)
	}

	movements := []*entity.Movement{
		{
			Type:    entity.MovementTypeDebit,
			Amount:  decimal.NewFromFloat(15350.50),
			Details: "Compra de almacén - fiado semanal",
			DueDate: now.AddDate(0, 0, 30),
		},
		{
			Type:    entity.MovementTypeCredit,
			Amount:  decimal.NewFromInt(10000),
			Details: "Pago parcial en efectivo",
			DueDate: now,
		},
	}
	for _, mv := range movements {
		mv.ID = uuid.New().String()
		mv.AccountID = account.ID
		mv.CreatedBy = admin.ID
		mv.Active = true
		mv.CreatedAt = now
		mv.UpdatedAt = now
		if err := movementRepo.Create(mv); err != nil {
			fmt.Fprintf(os.Stderr, "Crear movimiento: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Seed listo: comercio %q (admin %s / cliente %s, contraseña inicial = DNI)\n",
		merchant.Name, demoAdminEmail, demoCustomerEmail)
}
