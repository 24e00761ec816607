package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest alta de un movimiento en la cuenta corriente.
// El importe es siempre positivo; el signo lo aporta el tipo (1=debe, 2=haber).
type RegisterMovementRequest struct {
	Type    int             `json:"type" validate:"required,oneof=1 2"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
	Details string          `json:"details" validate:"required,min=1,max=500"`
	Receipt string          `json:"receipt" validate:"omitempty,max=100"`
	DueDate time.Time       `json:"due_date" validate:"required"`
}

// MarkPaidRequest marca un movimiento como pagado.
type MarkPaidRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=500"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Type      int             `json:"type"`
	TypeName  string          `json:"type_name"`
	Amount    decimal.Decimal `json:"amount"`
	Details   string          `json:"details"`
	Receipt   *string         `json:"receipt,omitempty"`
	DueDate   time.Time       `json:"due_date"`

	Paid         bool       `json:"paid"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	PaymentNotes *string    `json:"payment_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// AccountBalanceResponse saldo y crédito disponible derivados del log.
type AccountBalanceResponse struct {
	AccountID        string          `json:"account_id"`
	Balance          decimal.Decimal `json:"balance"`
	AvailableCredit  decimal.Decimal `json:"available_credit"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	Blocked          bool            `json:"blocked"`
	FormattedBalance string          `json:"formatted_balance"`
	BalanceStatus    string          `json:"balance_status"`
}

// SetCreditLimitRequest actualización del límite de crédito.
type SetCreditLimitRequest struct {
	CreditLimit decimal.Decimal `json:"credit_limit" validate:"required"`
}
