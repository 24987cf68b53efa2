package internal

import (
	"errors"
	"fmt"

	"github.com/DrGermanius/Storefront/internal/model"
)

var (
	ErrTransitionNotAllowed = errors.New("transition not allowed")
	ErrUnknownStatus        = errors.New("unknown order status")

	ErrPersistenceFailure = errors.New("order status was not persisted")
	ErrStatusConflict     = errors.New("order status was changed concurrently")

	ErrOrderNotFound  = errors.New("order not found")
	ErrMalformedOrder = errors.New("malformed order")
	ErrNoRecords      = errors.New("no records")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// TransitionError is returned by RequestTransition. Kind is either
// ErrTransitionNotAllowed or ErrUnknownStatus.
type TransitionError struct {
	Kind  error
	From  model.Status
	To    model.Status
	Actor model.Role
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %q -> %q by %q", e.Kind.Error(), e.From, e.To, e.Actor)
}

func (e *TransitionError) Unwrap() error {
	return e.Kind
}
