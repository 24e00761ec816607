package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de cuenta corriente. El signo lo determina el tipo,
// el importe es siempre positivo.
const (
	MovementTypeDebit  = 1 // debe: el cliente debe dinero (compra, cargo)
	MovementTypeCredit = 2 // haber: a favor del cliente (pago, abono)
)

// Movement es un asiento inmutable de la cuenta corriente. Una vez creado
// solo admite la actualización de estado de pago (Paid/PaidAt/PaymentNotes);
// las correcciones se registran como movimientos nuevos, nunca editando.
type Movement struct {
	ID        string
	AccountID string
	Type      int             // MovementTypeDebit, MovementTypeCredit
	Amount    decimal.Decimal // siempre > 0
	Details   string
	Receipt   *string // referencia a comprobante (opcional)
	DueDate   time.Time

	Paid         bool
	PaidAt       *time.Time
	PaymentNotes *string

	CreatedBy string // UserID que registró el movimiento
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
