package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"    // administrador del comercio
	RoleStaff    = "staff"    // personal del comercio
	RoleCustomer = "customer" // cliente final (puede vincularse a varios comercios)
)

// User representa una identidad autenticable.
// Para admin/staff pertenece a exactamente un Merchant (MerchantID requerido).
// Para customer, MerchantID es nil: la relación con comercios se da vía Membership.
type User struct {
	ID           string
	MerchantID   *string
	Email        string // único a nivel global
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	Name         string
	Role         string     // admin, staff, customer
	LastLoginAt  *time.Time // nil = nunca inició sesión (se usa para forzar cambio de contraseña)
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
