package apierror

// kinds.go — typed domain errors raised by the service layer.
// Handlers translate Kind into an HTTP status; the service layer never
// constructs HTTP responses itself.

import "fmt"

// Kind classifies a domain failure.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindInvalidState
	KindForbidden
	KindInsufficientStock
	KindConflict
)

// Error carries a user-safe message plus structured context so that callers
// can render "requested 5, available 2" style messages without parsing text.
type Error struct {
	Kind       Kind
	Message    string
	Entity     string
	ID         string
	Requested  int
	Available  int
}

func (e *Error) Error() string { return e.Message }

func NotFound(entity, id string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s no encontrado", entity),
		Entity:  entity,
		ID:      id,
	}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func InvalidState(msg string) *Error {
	return &Error{Kind: KindInvalidState, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func InsufficientStock(entity, id string, requested, available int) *Error {
	return &Error{
		Kind:      KindInsufficientStock,
		Message:   fmt.Sprintf("No hay suficiente stock disponible de %s (solicitado %d, disponible %d)", entity, requested, available),
		Entity:    entity,
		ID:        id,
		Requested: requested,
		Available: available,
	}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// KindOf extracts the Kind from any error. Non-domain errors map to KindInternal.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}
