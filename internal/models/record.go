package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gookit/validate"
)

var ErrInvalidRecord = errors.New("invalid record")

// Record is anything stored in a collection: it carries a unique id.
type Record interface {
	GetID() string
	SetID(id string)
}

// NewID returns a creation-time ordered identifier.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// validateStruct runs the gookit tag rules of v and wraps failures in ErrInvalidRecord.
func validateStruct(v any) error {
	vd := validate.Struct(v)
	if !vd.Validate() {
		return fmt.Errorf("%w: %s", ErrInvalidRecord, vd.Errors.One())
	}
	return nil
}
