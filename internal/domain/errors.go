package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrNotFound         ErrorKind = "not_found"
	ErrInvalidField     ErrorKind = "invalid_field"
	ErrInvalidReference ErrorKind = "invalid_reference"
	ErrConflict         ErrorKind = "conflict"
)

// Error is the failure taxonomy shared by all entity operations. Entity names
// the thing that failed ("customer", "product", "order", "order product") so
// callers can tell, say, a missing order apart from a missing product.
type Error struct {
	Kind    ErrorKind
	Entity  string
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFound(entity, id string) *Error {
	return &Error{
		Kind:    ErrNotFound,
		Entity:  entity,
		Message: fmt.Sprintf("%s %s not found", entity, id),
	}
}

func InvalidField(field, message string) *Error {
	return &Error{Kind: ErrInvalidField, Entity: field, Message: message}
}

func InvalidReference(message string) *Error {
	return &Error{Kind: ErrInvalidReference, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

// AssociationNotFound reports a missing order-product link when both rows
// exist on their own.
func AssociationNotFound(orderID, productID string) *Error {
	return &Error{
		Kind:    ErrNotFound,
		Entity:  "order product",
		Message: fmt.Sprintf("product %s not in order %s", productID, orderID),
	}
}

// KindOf returns the taxonomy kind of err, or "" when err is not a domain
// error.
func KindOf(err error) ErrorKind {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Kind
	}
	return ""
}
