// Package msgpack is a bidirectional codec between a Janet-style dynamic
// value model and the MessagePack wire format (https://msgpack.org). It is a
// Go port of the janet-msgpack native module.
//
// The encoder walks a value depth-first and always chooses the most compact
// wire representation: integers use the narrowest width that holds the exact
// value, short strings and small containers use the inline fixed forms.
// Floats always encode as 64-bit; the 32-bit form is accepted on decode and
// widened.
//
// MessagePack's type system is smaller than the host's, so the ambiguous
// mappings are configuration rather than convention:
//
//   - On encode, EncodeOptions choose the wire family (str or bin) for
//     strings and for byte buffers. Keywords and symbols always encode as
//     str.
//   - On decode, DecodeOptions choose the host type per wire category:
//     str to string, Keyword, Symbol, or []byte; bin to []byte or string;
//     array and map to their mutable or immutable forms.
//
// One deliberate exception: the keys directly owned by a decoded map become
// Keywords regardless of configuration, so {"a": 1} decodes to a table keyed
// by :a. The values, and the keys of containers nested inside them, follow
// the configured mapping.
//
// Every call is independent and synchronous. Encoding appends to a
// caller-owned Sink (typically a bytes.Buffer), decoding reads a complete
// in-memory slice; there is no shared state, so concurrent calls are safe as
// long as each uses its own sink or Decoder.
package msgpack
