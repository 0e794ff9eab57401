package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownOperation is returned for operation names and values outside the
// defined set.
var ErrUnknownOperation = errors.New("profile: unknown operation")

// Operation selects how a patch document is applied. One operation applies to
// a whole traversal.
type Operation int

const (
	Update Operation = iota
	Increment
	Decrement
	Delete
	ArrayAdd
	ArrayRemove
	Get
)

var operationNames = [...]string{
	Update:      "UPDATE",
	Increment:   "INCREMENT",
	Decrement:   "DECREMENT",
	Delete:      "DELETE",
	ArrayAdd:    "ARRAY_ADD",
	ArrayRemove: "ARRAY_REMOVE",
	Get:         "GET",
}

func (o Operation) String() string {
	if o.Valid() {
		return operationNames[o]
	}
	return "Operation(" + strconv.Itoa(int(o)) + ")"
}

// Valid reports whether o is one of the defined operations.
func (o Operation) Valid() bool {
	return o >= Update && o <= Get
}

// IsNumeric reports whether o only ever produces numeric leaf mutations.
func (o Operation) IsNumeric() bool {
	return o == Increment || o == Decrement
}

// ParseOperation returns the operation named s, ignoring case. Both the
// canonical names ("ARRAY_ADD") and their lower-case forms are accepted.
func ParseOperation(s string) (Operation, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for op, candidate := range operationNames {
		if candidate == name {
			return Operation(op), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Operation) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperation, int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Operation) UnmarshalText(text []byte) error {
	op, err := ParseOperation(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}
