package repository

import "github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para movimientos.
// El log es append-only: no hay Update general, solo UpdatePayment para el
// estado de pago (única mutación permitida sobre un asiento).
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// GetByIDForUpdate obtiene el movimiento bloqueando la fila; serializa
	// dos markPaid concurrentes sobre el mismo asiento.
	GetByIDForUpdate(id string) (*entity.Movement, error)
	// ListByAccount devuelve TODOS los movimientos de la cuenta ordenados por
	// fecha de creación ascendente. El saldo se deriva recorriéndolos.
	ListByAccount(accountID string) ([]*entity.Movement, error)
	// UpdatePayment persiste Paid, PaidAt y PaymentNotes.
	UpdatePayment(movement *entity.Movement) error
}
