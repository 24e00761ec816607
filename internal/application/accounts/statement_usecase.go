package accounts

import (
	"context"

	"github.com/jhoicas/CuentaCorriente-api/internal/domain"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/ledger"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository"
)

// StatementUseCase genera el resumen de cuenta en PDF para entregar al cliente.
type StatementUseCase struct {
	accountRepo    repository.AccountRepository
	membershipRepo repository.MembershipRepository
	merchantRepo   repository.MerchantRepository
	movementRepo   repository.MovementRepository
	generator      StatementPDFGenerator
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(
	accountRepo repository.AccountRepository,
	membershipRepo repository.MembershipRepository,
	merchantRepo repository.MerchantRepository,
	movementRepo repository.MovementRepository,
	generator StatementPDFGenerator,
) *StatementUseCase {
	return &StatementUseCase{
		accountRepo:    accountRepo,
		membershipRepo: membershipRepo,
		merchantRepo:   merchantRepo,
		movementRepo:   movementRepo,
		generator:      generator,
	}
}

// Generate arma el PDF del resumen: comercio, cliente, movimientos y saldo.
// merchantID/userID autorizan igual que las consultas de saldo.
func (uc *StatementUseCase) Generate(ctx context.Context, accountID, merchantID, userID string) ([]byte, error) {
	acc, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if acc == nil || !acc.Active {
		return nil, domain.ErrNotFound
	}
	membership, err := uc.membershipRepo.GetByID(acc.MembershipID, false)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, domain.ErrNotFound
	}
	if merchantID != "" && membership.MerchantID != merchantID {
		return nil, domain.ErrForbidden
	}
	if userID != "" && membership.UserID != userID {
		return nil, domain.ErrForbidden
	}
	merchant, err := uc.merchantRepo.GetByID(membership.MerchantID)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movementRepo.ListByAccount(acc.ID)
	if err != nil {
		return nil, err
	}
	balance := ledger.Balance(movements)

	return uc.generator.GenerateStatementPDF(ctx, merchant, membership, acc, movements, balance)
}
