package domain

import "errors"

// Service failure kinds. The messages are the user-facing strings the
// product has always rendered; callers branch with errors.Is, the
// transport layer only renders the text.
var (
	ErrDuplicateAccount   = errors.New("El usuario ya esta registrado")
	ErrAccountNotFound    = errors.New("El usuario no existe")
	ErrInvalidCredentials = errors.New("Password Incorrecto")
	ErrProjectNotFound    = errors.New("Proyecto no encontrado")
	ErrTaskNotFound       = errors.New("Tarea no encontrada")
	ErrForbidden          = errors.New("No tienes las credenciales para editar")
	ErrUnauthenticated    = errors.New("No autenticado")
)
