package domain

import "errors"

// Errores de dominio (sin dependencias externas). Toda operación del core
// devuelve uno de estos sentinelas para fallos esperables; lo inesperado
// (caída de la DB, etc.) se propaga envuelto y el borde HTTP lo mapea a 500.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrMerchantEmailExists = errors.New("ya existe un comercio registrado con este email")
	ErrUserEmailExists     = errors.New("ya existe un usuario registrado con este email")
	ErrDuplicateMembership = errors.New("el usuario ya está vinculado a este comercio")
	ErrMembershipNotActive = errors.New("la vinculación no está activa")
	ErrMembershipRejected  = errors.New("la vinculación fue rechazada")
	ErrAlreadyApproved     = errors.New("la vinculación ya fue aprobada")
	ErrAlreadyPaid         = errors.New("el movimiento ya está marcado como pagado")
	ErrInvalidCredentials  = errors.New("credenciales inválidas")
	ErrAccountPending      = errors.New("tu cuenta está pendiente de aprobación por el comercio")
	ErrAccountDeactivated  = errors.New("tu cuenta ha sido inactivada, contacta al comercio")
	ErrAccountBlocked      = errors.New("la cuenta corriente está bloqueada para nuevos cargos")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrForbidden           = errors.New("acceso denegado")
)
