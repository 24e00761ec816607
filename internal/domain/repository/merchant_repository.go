package repository

import "github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"

// MerchantRepository define el puerto de persistencia para Merchant (DIP).
// La implementación vive en infrastructure.
type MerchantRepository interface {
	Create(merchant *entity.Merchant) error
	GetByID(id string) (*entity.Merchant, error)
	GetByEmail(email string) (*entity.Merchant, error)
	Update(merchant *entity.Merchant) error
	// List lista comercios activos (alimenta el selector de registro de clientes).
	List(limit, offset int) ([]*entity.Merchant, error)
	// Deactivate soft delete: marca el comercio como inactivo.
	Deactivate(id string) error
}
