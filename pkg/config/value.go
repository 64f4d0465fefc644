package config

import (
	"errors"
	"strconv"
)

var (
	// ErrUnsupportedValue is returned when a value cannot be represented by
	// one of the four ConfigTree kinds (arrays, null, timestamps, ...).
	ErrUnsupportedValue = errors.New("config: unsupported value")
	// ErrNonFinite is returned for NaN and infinite numbers.
	ErrNonFinite = errors.New("config: non-finite number")
	// ErrPathConflict is returned when a dotted path walks through a leaf.
	ErrPathConflict = errors.New("config: path conflicts with leaf value")
)

// Kind enumerates the value variants a ConfigTree can hold.
type Kind int

const (
	KindString Kind = iota + 1
	KindNumber
	KindBool
	KindTree
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindTree:
		return "tree"
	default:
		return "unknown"
	}
}

// Value is implemented by String, Number, Bool and *Tree only.
type Value interface {
	Kind() Kind
	isValue()
}

// String is a textual leaf.
type String string

// Number is a numeric leaf. Integers and fractions share one representation.
type Number float64

// Bool is a boolean leaf.
type Bool bool

func (String) Kind() Kind { return KindString }
func (Number) Kind() Kind { return KindNumber }
func (Bool) Kind() Kind   { return KindBool }
func (*Tree) Kind() Kind  { return KindTree }

func (String) isValue() {}
func (Number) isValue() {}
func (Bool) isValue()   {}
func (*Tree) isValue()  {}

func (s String) String() string { return string(s) }

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}
