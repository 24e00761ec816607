package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
// Los movimientos son append-only: nunca se actualiza monto, tipo ni cuenta.
type MovementRepo struct {
	q Querier
}

func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, account_id, type, amount, details, receipt, due_date, paid, paid_at,
	payment_notes, created_by, active, created_at, updated_at`

// Create persiste un nuevo movimiento.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.AccountID, m.Type, m.Amount, m.Details, m.Receipt, m.DueDate,
		m.Paid, m.PaidAt, m.PaymentNotes, m.CreatedBy, m.Active, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento activo por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1 AND active = TRUE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get movement by id")
}

// GetByIDForUpdate obtiene el movimiento bloqueando la fila. Usar dentro de
// una transacción al marcar pagos.
func (r *MovementRepo) GetByIDForUpdate(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1 AND active = TRUE FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get movement for update")
}

// ListByAccount lista todos los movimientos activos de una cuenta en orden
// cronológico ascendente.
func (r *MovementRepo) ListByAccount(accountID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM movements
		WHERE account_id = $1 AND active = TRUE
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list movements by account: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := scanMovement(rows, &m); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// UpdatePayment actualiza únicamente el estado de pago del movimiento.
func (r *MovementRepo) UpdatePayment(m *entity.Movement) error {
	query := `
		UPDATE movements
		SET paid = $2, paid_at = $3, payment_notes = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Paid, m.PaidAt, m.PaymentNotes, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update movement payment: %w", err)
	}
	return nil
}

func (r *MovementRepo) scanOne(row pgx.Row, op string) (*entity.Movement, error) {
	var m entity.Movement
	if err := scanMovement(row, &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

func scanMovement(row pgx.Row, m *entity.Movement) error {
	return row.Scan(
		&m.ID, &m.AccountID, &m.Type, &m.Amount, &m.Details, &m.Receipt, &m.DueDate,
		&m.Paid, &m.PaidAt, &m.PaymentNotes, &m.CreatedBy, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
}
