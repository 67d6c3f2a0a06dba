package kernel

import (
	"fmt"

	"workorders/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for the zero UUID, which every
// constructor of this package refuses to produce except NewUUID's random draw.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("identifier")

// UUID identifies work orders and their items. It is immutable; the zero value is the
// nil UUID and fails Validate.
//
//	workOrderID := kernel.NewUUID()
//	itemID, err := kernel.ParseID("item id", c.Param("itemId"))
type UUID struct {
	id uuid.UUID
}

func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString accepts every textual form uuid.Parse does, the nil UUID included.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("parse identifier %q: %w", s, err)
	}
	return UUID{id: id}, nil
}

// ParseID parses an identifier received from a caller. Malformed input is reported as
// errs.ErrValueIsInvalid for paramName, the nil UUID as errs.ErrValueIsRequired.
func ParseID(paramName, s string) (UUID, error) {
	id, err := UUIDFromString(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	if id.Validate() != nil {
		return UUID{}, errs.NewValueIsRequiredError(paramName)
	}
	return id, nil
}

// UUIDFromBytes restores an identifier read from a uuid column. It needs exactly 16
// bytes and rejects the nil UUID.
func UUIDFromBytes(b []byte) (UUID, error) {
	raw, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("restore identifier from %d bytes: %w", len(b), err)
	}

	id := UUID{id: raw}
	if err = id.Validate(); err != nil {
		return UUID{}, err
	}
	return id, nil
}

// String renders the canonical hyphenated form, which is also how ids are exposed.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying value for storage.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
