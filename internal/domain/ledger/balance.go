// Package ledger deriva el saldo de una cuenta corriente desde su log de
// movimientos. El saldo nunca se almacena: se recalcula en cada lectura
// recorriendo los asientos, así no puede divergir de la historia.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
)

// Balance calcula el saldo: Σ(haberes) − Σ(debes).
// Saldo negativo significa que el cliente debe dinero.
// Los movimientos inactivos (soft delete) no suman.
func Balance(movements []*entity.Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if !m.Active {
			continue
		}
		switch m.Type {
		case entity.MovementTypeCredit:
			total = total.Add(m.Amount)
		case entity.MovementTypeDebit:
			total = total.Sub(m.Amount)
		}
	}
	return total
}

// Available crédito disponible: límite de crédito + saldo actual.
// Es el margen que queda antes de que la cuenta esté "pasada de límite".
func Available(creditLimit, balance decimal.Decimal) decimal.Decimal {
	return creditLimit.Add(balance)
}
