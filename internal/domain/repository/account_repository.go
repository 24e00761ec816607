package repository

import "github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"

// AccountRepository define el puerto de persistencia para la cuenta corriente.
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	// GetByMembership devuelve la cuenta de la vinculación (1:1) o nil si no existe.
	GetByMembership(membershipID string) (*entity.Account, error)
	Update(account *entity.Account) error
	Deactivate(id string) error
}
