package auth

import (
	"context"

	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository"
)

// TxRunner ejecuta los registros multi-paso (comercio+admin, cliente+vínculo)
// como una sola transacción: si falla un paso posterior a la primera escritura,
// nada queda visible para lecturas subsecuentes.
type TxRunner interface {
	RunAuth(ctx context.Context, fn func(
		merchantRepo repository.MerchantRepository,
		userRepo repository.UserRepository,
		membershipRepo repository.MembershipRepository,
		accountRepo repository.AccountRepository,
	) error) error
}
