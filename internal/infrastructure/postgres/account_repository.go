package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, membership_id, credit_limit, blocked, notes, active, created_at, updated_at`

// Create persiste una nueva cuenta corriente. El saldo nunca se almacena:
// se deriva de los movimientos.
func (r *AccountRepo) Create(a *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.MembershipID, a.CreditLimit, a.Blocked, a.Notes, a.Active, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta activa por ID.
func (r *AccountRepo) GetByID(id string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND active = TRUE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get account by id")
}

// GetByMembership obtiene la cuenta activa de una vinculación.
func (r *AccountRepo) GetByMembership(membershipID string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE membership_id = $1 AND active = TRUE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, membershipID), "get account by membership")
}

// Update actualiza límite de crédito, bloqueo y notas.
func (r *AccountRepo) Update(a *entity.Account) error {
	query := `
		UPDATE accounts
		SET credit_limit = $2, blocked = $3, notes = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.CreditLimit, a.Blocked, a.Notes, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// Deactivate soft delete de la cuenta.
func (r *AccountRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE accounts SET active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate account: %w", err)
	}
	return nil
}

func (r *AccountRepo) scanOne(row pgx.Row, op string) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(
		&a.ID, &a.MembershipID, &a.CreditLimit, &a.Blocked, &a.Notes,
		&a.Active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}
