package msgpack

// Sink is the growable byte sink the encoder appends to. *bytes.Buffer
// implements it. The sink belongs to the caller: the encoder only appends,
// never resets or reads back, so a caller can interleave its own writes
// between Encode calls or hand the same buffer to several encoders in turn.
//
// Writes are assumed infallible, as with bytes.Buffer. On encode failure the
// bytes already appended are left in place; callers that need atomicity
// should encode into a scratch sink and discard it on error.
type Sink interface {
	// Write appends p.
	Write(p []byte) (n int, err error)

	// WriteByte appends a single byte.
	WriteByte(b byte) error

	// Grow reserves capacity for at least n more bytes.
	Grow(n int)
}
