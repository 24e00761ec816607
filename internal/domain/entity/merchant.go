package entity

import "time"

// Merchant representa un comercio/tenant del sistema (multi-tenant).
// Cada comercio lleva las cuentas corrientes de sus propios clientes.
type Merchant struct {
	ID                    string
	Name                  string
	Email                 string // único a nivel global
	Phone                 string
	Address               string
	Logo                  string
	EmailNotifications    bool
	WhatsAppNotifications bool
	AutoApproveCustomers  bool // autogestión queda Activa sin pasar por aprobación
	Active                bool // soft delete: nunca se borra físicamente
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
