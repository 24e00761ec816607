package repository

import (
	"time"

	"github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	// UpdateLastLogin estampa el último acceso (marca que el usuario ya entró
	// al menos una vez; un último acceso nulo fuerza el cambio de contraseña).
	UpdateLastLogin(id string, at time.Time) error
	Deactivate(id string) error
}
