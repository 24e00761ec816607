package entity

import (
	"strings"
	"time"
)

// Estados de una vinculación cliente-comercio.
const (
	StatusPending  = 1 // registrado por autogestión, pendiente de aprobación
	StatusActive   = 2 // aprobada: puede operar su cuenta corriente
	StatusRejected = 3 // rechazada por el comercio
)

// Origen del alta de la vinculación.
const (
	OriginAdmin = 1 // creada desde la administración del comercio
	OriginSelf  = 2 // autogestión del cliente
)

// Membership vincula un User (rol customer) con un Merchant.
// Es la tabla intermedia del modelo: un mismo usuario puede tener
// vinculaciones con varios comercios, cada una con su propia cuenta corriente.
type Membership struct {
	ID         string
	UserID     string
	MerchantID string

	// Snapshot de contacto propio de esta vinculación.
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	TaxID     string // DNI / CUIT

	Status     int // StatusPending, StatusActive, StatusRejected
	Origin     int // OriginAdmin, OriginSelf
	ApprovedAt *time.Time
	ApprovedBy *string // UserID del aprobador (o rechazador)

	Alias         string // ej: "Juan el del taller"
	MerchantNotes string // notas privadas del comercio

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName nombre y apellido concatenados (derivado, nunca persistido).
func (m *Membership) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// StatusName nombre legible del estado.
func (m *Membership) StatusName() string {
	switch m.Status {
	case StatusPending:
		return "Pendiente"
	case StatusActive:
		return "Activo"
	case StatusRejected:
		return "Rechazado"
	default:
		return "Desconocido"
	}
}
