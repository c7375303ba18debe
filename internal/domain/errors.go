package domain

import "errors"

// Errores de dominio (sin dependencias externas). La capa HTTP los mapea
// a códigos de estado; la lógica de negocio solo conoce estas categorías.
var (
	ErrNoEncontrado          = errors.New("recurso no encontrado")
	ErrUsuarioNoEncontrado   = errors.New("usuario no encontrado")
	ErrValidacion            = errors.New("entrada inválida")
	ErrConflicto             = errors.New("conflicto con el estado actual")
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
	ErrCuentaInactiva        = errors.New("cuenta inactiva")
	ErrNoAutorizado          = errors.New("no autorizado")
	ErrAccesoDenegado        = errors.New("acceso denegado")
)
