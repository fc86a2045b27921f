package dtype

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned for type names, descriptors or Go types outside
// the supported set.
var ErrUnsupported = errors.New("unsupported type")

// Kind identifies the element type of a batch or a table side.
type Kind uint8

const (
	// KindInvalid is the zero Kind and is never accepted.
	KindInvalid Kind = iota
	// Int32 is a 32-bit signed integer.
	Int32
	// Int64 is a 64-bit signed integer.
	Int64
	// Float32 is an IEEE-754 single precision float.
	Float32
	// Float64 is an IEEE-754 double precision float.
	Float64
	// String is a variable-length UTF-8 string.
	String
)

// Kinds lists every valid kind in declaration order.
var Kinds = []Kind{Int32, Int64, Float32, Float64, String}

// StringTypeName is the canonical host spelling of the string kind.
const StringTypeName = "custom[string]64"

// Type codes of the host array descriptor.
const (
	CodeInt    uint8 = 0
	CodeUInt   uint8 = 1
	CodeFloat  uint8 = 2
	CodeString uint8 = 130
)

// DataType is the element type triple of a host array descriptor.
type DataType struct {
	Code  uint8
	Bits  uint8
	Lanes uint16
}

func (d DataType) String() string {
	switch d.Code {
	case CodeInt:
		return fmt.Sprintf("int%d", d.Bits)
	case CodeUInt:
		return fmt.Sprintf("uint%d", d.Bits)
	case CodeFloat:
		return fmt.Sprintf("float%d", d.Bits)
	case CodeString:
		return fmt.Sprintf("custom[string]%d", d.Bits)
	default:
		return fmt.Sprintf("code%d_bits%d_lanes%d", d.Code, d.Bits, d.Lanes)
	}
}

// String returns the host type name of the kind.
func (k Kind) String() string {
	switch k {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case String:
		return StringTypeName
	default:
		return "invalid"
	}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return k >= Int32 && k <= String
}

// IsString reports whether k is the string kind.
func (k Kind) IsString() bool { return k == String }

// DataType returns the host descriptor of the kind.
func (k Kind) DataType() DataType {
	switch k {
	case Int32:
		return DataType{Code: CodeInt, Bits: 32, Lanes: 1}
	case Int64:
		return DataType{Code: CodeInt, Bits: 64, Lanes: 1}
	case Float32:
		return DataType{Code: CodeFloat, Bits: 32, Lanes: 1}
	case Float64:
		return DataType{Code: CodeFloat, Bits: 64, Lanes: 1}
	case String:
		return DataType{Code: CodeString, Bits: 64, Lanes: 1}
	default:
		return DataType{}
	}
}

// Parse resolves a host type name. Both "custom[string]64" and "string" name
// the string kind.
func Parse(name string) (Kind, error) {
	switch name {
	case "int32":
		return Int32, nil
	case "int64":
		return Int64, nil
	case "float32":
		return Float32, nil
	case "float64":
		return Float64, nil
	case StringTypeName, "string":
		return String, nil
	default:
		return KindInvalid, fmt.Errorf("%w: %q", ErrUnsupported, name)
	}
}

// FromDataType maps a host descriptor to a Kind. Only single-lane
// descriptors are accepted.
func FromDataType(d DataType) (Kind, error) {
	if d.Lanes != 1 {
		return KindInvalid, fmt.Errorf("%w: %s with %d lanes", ErrUnsupported, d, d.Lanes)
	}
	switch {
	case d.Code == CodeInt && d.Bits == 32:
		return Int32, nil
	case d.Code == CodeInt && d.Bits == 64:
		return Int64, nil
	case d.Code == CodeFloat && d.Bits == 32:
		return Float32, nil
	case d.Code == CodeFloat && d.Bits == 64:
		return Float64, nil
	case d.Code == CodeString:
		return String, nil
	default:
		return KindInvalid, fmt.Errorf("%w: %s", ErrUnsupported, d)
	}
}
