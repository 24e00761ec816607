package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMembershipRequest alta de cliente desde la administración del comercio.
// El password del usuario nuevo se siembra con el DNI para el primer ingreso.
type CreateMembershipRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=50"`
	Address   string `json:"address" validate:"omitempty,max=300"`
	TaxID     string `json:"tax_id" validate:"required,max=20"`
	Alias     string `json:"alias" validate:"omitempty,max=100"`
}

// UpdateMembershipRequest actualización del snapshot de contacto.
type UpdateMembershipRequest struct {
	FirstName     string `json:"first_name" validate:"required,min=1,max=100"`
	LastName      string `json:"last_name" validate:"required,min=1,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"omitempty,max=50"`
	Address       string `json:"address" validate:"omitempty,max=300"`
	TaxID         string `json:"tax_id" validate:"omitempty,max=20"`
	Alias         string `json:"alias" validate:"omitempty,max=100"`
	MerchantNotes string `json:"merchant_notes" validate:"omitempty,max=1000"`
}

// AccountSummary resumen de la cuenta corriente embebido en respuestas de vinculación.
type AccountSummary struct {
	ID               string          `json:"id"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	Blocked          bool            `json:"blocked"`
	Balance          decimal.Decimal `json:"balance"`
	AvailableCredit  decimal.Decimal `json:"available_credit"`
	FormattedBalance string          `json:"formatted_balance"`
	BalanceStatus    string          `json:"balance_status"`
}

// MembershipResponse salida de una vinculación con su cuenta (si existe).
type MembershipResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	MerchantID string `json:"merchant_id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
	Alias     string `json:"alias,omitempty"`

	Status     int        `json:"status"`
	StatusName string     `json:"status_name"`
	Origin     int        `json:"origin"`
	OriginName string     `json:"origin_name"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	ApprovedBy *string    `json:"approved_by,omitempty"`

	Account *AccountSummary `json:"account,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MembershipForUserResponse vinculación vista por el propio cliente (dashboard
// multi-comercio): comercio + estado + saldo.
type MembershipForUserResponse struct {
	MembershipID string          `json:"membership_id"`
	MerchantID   string          `json:"merchant_id"`
	MerchantName string          `json:"merchant_name"`
	Status       int             `json:"status"`
	StatusName   string          `json:"status_name"`
	Account      *AccountSummary `json:"account,omitempty"`
}
