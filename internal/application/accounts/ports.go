package accounts

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del ledger atados a esa tx. Es la frontera transaccional del
// façade: apertura de cuenta, alta de movimiento y marca de pago son atómicos.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		membershipRepo repository.MembershipRepository,
		accountRepo repository.AccountRepository,
		movementRepo repository.MovementRepository,
	) error) error
}

// StatementPDFGenerator genera el resumen de cuenta en PDF.
// La implementación (Maroto) vive en infrastructure.
type StatementPDFGenerator interface {
	GenerateStatementPDF(
		ctx context.Context,
		merchant *entity.Merchant,
		membership *entity.Membership,
		account *entity.Account,
		movements []*entity.Movement,
		balance decimal.Decimal,
	) ([]byte, error)
}
