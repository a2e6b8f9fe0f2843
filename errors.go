package msgpack

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrTooDeep is returned when a value (or a byte stream describing one)
	// nests more than MaxDepth levels of arrays and maps.
	ErrTooDeep = errors.New("msgpack: recursed too deeply")

	// ErrOversize is returned when a string, byte slice, or container is too
	// long for any MessagePack length field (more than 2^32-1 bytes or
	// elements).
	ErrOversize = errors.New("msgpack: value too long for any wire representation")
)

// UnsupportedTypeError reports a value with no MessagePack representation:
// an encoder input outside the supported value set, or a decoded map key
// that cannot be used as a Go map key.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("msgpack: type %s not supported", e.Type)
}

// SyntaxError reports malformed input: a truncated byte stream, a length
// field too large to represent, or a tag this codec does not map (the
// reserved byte 0xc1 and the ext family).
type SyntaxError struct {
	Offset int // position of the offending read in the input

	msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("msgpack: %s at offset %d", e.msg, e.Offset)
}

// ConfigError reports an encode or decode option table naming an option
// outside the legal set for its category.
type ConfigError struct {
	Option string // the offending name
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("msgpack: invalid option %q: %s", e.Option, e.Reason)
}
