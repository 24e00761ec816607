package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/CuentaCorriente-api/internal/application/accounts"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/auth"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/customers"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository"
)

// Ensure TxRunner implementa los runners de cada caso de uso.
var _ customers.TxRunner = (*TxRunner)(nil)
var _ accounts.TxRunner = (*TxRunner)(nil)
var _ auth.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Commit si el callback devuelve nil; Rollback en cualquier otro caso.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run transacción para transiciones de vinculación (aprobar, rechazar, altas).
func (r *TxRunner) Run(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	membershipRepo repository.MembershipRepository,
	accountRepo repository.AccountRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewMembershipRepository(tx), NewAccountRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLedger transacción para operaciones del ledger (apertura de cuenta,
// alta de movimiento, marca de pago).
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	membershipRepo repository.MembershipRepository,
	accountRepo repository.AccountRepository,
	movementRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMembershipRepository(tx), NewAccountRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAuth transacción para registros multi-paso (comercio+admin, cliente+vínculo).
func (r *TxRunner) RunAuth(ctx context.Context, fn func(
	merchantRepo repository.MerchantRepository,
	userRepo repository.UserRepository,
	membershipRepo repository.MembershipRepository,
	accountRepo repository.AccountRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMerchantRepository(tx), NewUserRepository(tx), NewMembershipRepository(tx), NewAccountRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
