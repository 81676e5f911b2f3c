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

	// Errores del ciclo de vida de producto.
	ErrUnknownStage       = errors.New("etapa desconocida")
	ErrNoNextStage        = errors.New("la etapa actual no tiene etapa siguiente")
	ErrPermissionDenied   = errors.New("el usuario no tiene permiso para entrar a esa etapa")
	ErrProductCancelled   = errors.New("el producto fue cancelado y su etapa no puede modificarse")
	ErrStandbyRestriction = errors.New("un producto en standby solo puede volver a su etapa anterior")
	ErrNoHistory          = errors.New("el producto no tiene historial de etapas")

	// Validación del BOM en la creación de producto.
	ErrMaterialNotFound = errors.New("material no encontrado")
)
