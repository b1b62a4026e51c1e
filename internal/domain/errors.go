package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrAccountNameTaken ya existe una cuenta con el mismo nombre canónico (servicio + número).
	ErrAccountNameTaken = errors.New("ya existe una cuenta con ese nombre")
	// ErrProfileOccupied el perfil ya tiene una asignación activa.
	ErrProfileOccupied = errors.New("el perfil ya está ocupado")
	// ErrProfileNotOccupied el perfil no tiene asignación activa que liberar.
	ErrProfileNotOccupied = errors.New("el perfil no está ocupado")
	// ErrProfileNotEditable el perfil no es asignable (cuenta privada, perfil > 1).
	ErrProfileNotEditable = errors.New("el perfil no está disponible en cuentas privadas")
	// ErrAccountHasUsers la cuenta tiene perfiles ocupados y no se puede eliminar.
	ErrAccountHasUsers = errors.New("no se puede eliminar una cuenta con usuarios asignados")
	// ErrCustomerHasAssignments el cliente tiene asignaciones activas y no se puede eliminar.
	ErrCustomerHasAssignments = errors.New("no se puede eliminar un cliente con asignaciones activas")
	// ErrServiceHasAccounts el servicio tiene cuentas que lo referencian.
	ErrServiceHasAccounts = errors.New("no se puede eliminar un servicio con cuentas registradas")
)
