package types

import "fmt"

// ResolvedType is the type the checker assigns to every expression.
type ResolvedType int

const (
	// Unit is only produced for an empty block, which the parser never emits.
	Unit ResolvedType = iota
	Bool
	Int64
)

func (t ResolvedType) String() string {
	switch t {
	case Unit:
		return "unit"
	case Bool:
		return "bool"
	case Int64:
		return "int64"
	}
	return fmt.Sprintf("ResolvedType(%d)", int(t))
}

func (t ResolvedType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ResolvedType) UnmarshalText(data []byte) error {
	switch string(data) {
	case "unit":
		*t = Unit
	case "bool":
		*t = Bool
	case "int64":
		*t = Int64
	default:
		return fmt.Errorf("unknown type %q", string(data))
	}
	return nil
}
