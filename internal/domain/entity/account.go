package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account es la cuenta corriente de una vinculación (1:1 con Membership).
// El saldo NO se almacena: se deriva siempre del log de movimientos
// (ver internal/domain/ledger). Aquí solo viven límite de crédito,
// bloqueo y observaciones.
type Account struct {
	ID           string
	MembershipID string
	CreditLimit  decimal.Decimal // default 0
	Blocked      bool            // bloqueada: el façade rechaza nuevos débitos
	Notes        string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
