package repository

import "github.com/jhoicas/CuentaCorriente-api/internal/domain/entity"

// MembershipRepository define el puerto de persistencia para la vinculación
// User↔Merchant. Todas las consultas excluyen filas inactivas salvo que el
// parámetro includeInactive indique lo contrario (el soft delete es explícito,
// no un filtro global invisible; así los tests pueden ejercitar lecturas de
// auditoría sobre vinculaciones borradas).
type MembershipRepository interface {
	Create(membership *entity.Membership) error
	GetByID(id string, includeInactive bool) (*entity.Membership, error)
	// GetByIDForUpdate obtiene la vinculación bloqueando la fila
	// (SELECT ... FOR UPDATE). Solo tiene sentido dentro de una transacción:
	// es lo que serializa dos approve concurrentes sobre la misma fila.
	GetByIDForUpdate(id string) (*entity.Membership, error)
	GetByUserAndMerchant(userID, merchantID string) (*entity.Membership, error)
	// ListByMerchant lista vinculaciones de un comercio; status nil = todas.
	ListByMerchant(merchantID string, status *int, limit, offset int) ([]*entity.Membership, error)
	// ListByUser lista las vinculaciones activas de un usuario en todos sus comercios.
	ListByUser(userID string) ([]*entity.Membership, error)
	Update(membership *entity.Membership) error
	Deactivate(id string) error
}
