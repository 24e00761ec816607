package customers

import (
	"context"

	"github.com/jhoicas/CuentaCorriente-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que "verificar estado y escribir
// estado" (approve) o "verificar vínculo y crear vínculo" (alta) no se
// entrelacen con una petición concurrente en conflicto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		membershipRepo repository.MembershipRepository,
		accountRepo repository.AccountRepository,
	) error) error
}
