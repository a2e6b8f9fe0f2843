package msgpack

// The codec works over a closed set of host value types rather than arbitrary
// Go structs. The set mirrors Janet's value model: alongside the ordinary Go
// types (nil, bool, the integer and float kinds, string, []byte, []any,
// map[any]any) it distinguishes interned text from plain strings and
// immutable containers from mutable ones. Values outside the set are rejected
// with an *UnsupportedTypeError.

// Keyword is an interned identifier, Janet's :keyword. It always encodes as
// the str wire category regardless of encoder configuration, and it is the
// default type for decoded map keys.
type Keyword string

// Symbol is an interned identifier, Janet's 'symbol. Like Keyword, it always
// encodes as str.
type Symbol string

// Tuple is the immutable counterpart of []any. Go cannot enforce the
// immutability; the type records that the value was (or should be decoded
// as) an immutable sequence.
type Tuple []any

// Struct is the immutable counterpart of map[any]any.
type Struct map[any]any
