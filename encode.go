package msgpack

import (
	"bytes"
	"encoding/binary"
	"math"
	"reflect"
)

// MaxDepth is the nesting limit for arrays and maps, shared by the encoder
// and the decoder. A value (or byte stream) nested deeper fails with
// ErrTooDeep.
const MaxDepth = 1024

// defaultBufferCap is the initial capacity of the sink Marshal allocates.
const defaultBufferCap = 32

// Marshal encodes v into a fresh buffer using default options.
func Marshal(v any) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, defaultBufferCap))
	if err := NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalWith encodes v into a fresh buffer using the given options.
func MarshalWith(v any, opts EncodeOptions) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, defaultBufferCap))
	enc := NewEncoder(buf)
	enc.Opts = opts
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encoder appends MessagePack-encoded values to a caller-owned sink.
type Encoder struct {
	// Opts may be set before the first Encode call.
	Opts EncodeOptions

	sink    Sink
	scratch [8]byte
}

// NewEncoder returns an Encoder appending to sink. The sink is not reset;
// encoded bytes follow whatever it already holds.
func NewEncoder(sink Sink) *Encoder {
	return &Encoder{sink: sink}
}

// Encode appends the encoding of one value. On error the sink keeps the
// bytes written so far.
func (e *Encoder) Encode(v any) error {
	return e.encode(v, 0)
}

func (e *Encoder) encode(v any, depth int) error {
	if depth > MaxDepth {
		return ErrTooDeep
	}
	switch x := v.(type) {
	case nil:
		e.writeByte(tagNil)
	case bool:
		if x {
			e.writeByte(tagTrue)
		} else {
			e.writeByte(tagFalse)
		}
	case int:
		e.encodeInt(int64(x))
	case int8:
		e.encodeInt(int64(x))
	case int16:
		e.encodeInt(int64(x))
	case int32:
		e.encodeInt(int64(x))
	case int64:
		e.encodeInt(x)
	case uint:
		e.encodeUint(uint64(x))
	case uint8:
		e.encodeUint(uint64(x))
	case uint16:
		e.encodeUint(uint64(x))
	case uint32:
		e.encodeUint(uint64(x))
	case uint64:
		e.encodeUint(x)
	case uintptr:
		e.encodeUint(uint64(x))
	case float32:
		e.encodeFloat(float64(x))
	case float64:
		e.encodeFloat(x)
	case string:
		return e.encodeStringBytes([]byte(x), e.Opts.stringFormat())
	case Keyword:
		// Keywords and symbols are interned text and unconditionally str.
		return e.encodeStringBytes([]byte(x), FormatStr)
	case Symbol:
		return e.encodeStringBytes([]byte(x), FormatStr)
	case []byte:
		return e.encodeStringBytes(x, e.Opts.bufferFormat())
	case []any:
		return e.encodeSequence(x, depth)
	case Tuple:
		return e.encodeSequence(x, depth)
	case map[any]any:
		return e.encodeMapping(x, depth)
	case Struct:
		return e.encodeMapping(x, depth)
	default:
		return &UnsupportedTypeError{Type: reflect.TypeOf(v)}
	}
	return nil
}

// encodeInt picks the narrowest representation holding i exactly:
// positive fixint, negative fixint, or a signed 8/16/32/64-bit tag.
// Non-negative values use the unsigned forms.
func (e *Encoder) encodeInt(i int64) {
	if i >= 0 {
		e.encodeUint(uint64(i))
		return
	}
	if i >= -32 {
		e.writeByte(negFixintLow | byte(i+32))
		return
	}
	switch {
	case i >= math.MinInt8:
		e.writeByte(tagInt8)
		e.writeByte(byte(i))
	case i >= math.MinInt16:
		e.writeByte(tagInt16)
		e.writeUint16(uint16(i))
	case i >= math.MinInt32:
		e.writeByte(tagInt32)
		e.writeUint32(uint32(i))
	default:
		e.writeByte(tagInt64)
		e.writeUint64(uint64(i))
	}
}

func (e *Encoder) encodeUint(u uint64) {
	switch {
	case u <= 127:
		e.writeByte(byte(u))
	case u <= math.MaxUint8:
		e.writeByte(tagUint8)
		e.writeByte(byte(u))
	case u <= math.MaxUint16:
		e.writeByte(tagUint16)
		e.writeUint16(uint16(u))
	case u <= math.MaxUint32:
		e.writeByte(tagUint32)
		e.writeUint32(uint32(u))
	default:
		e.writeByte(tagUint64)
		e.writeUint64(u)
	}
}

// encodeFloat always emits the 64-bit form. The 32-bit form is decoded but
// never produced.
func (e *Encoder) encodeFloat(f float64) {
	e.writeByte(tagFloat64)
	e.writeUint64(math.Float64bits(f))
}

func (e *Encoder) encodeStringBytes(b []byte, format WireFormat) error {
	n := len(b)
	if uint64(n) > math.MaxUint32 {
		return ErrOversize
	}
	e.sink.Grow(n + 5)
	if format == FormatStr && n <= 31 {
		e.writeByte(fixstrLow | byte(n))
		e.write(b)
		return nil
	}
	// str8/16/32 and bin8/16/32 are contiguous tag runs, so the same width
	// escalation serves both; bin has no inline form.
	start := tagStr8
	if format == FormatBin {
		start = tagBin8
	}
	switch {
	case n <= math.MaxUint8:
		e.writeByte(start)
		e.writeByte(byte(n))
	case n <= math.MaxUint16:
		e.writeByte(start + 1)
		e.writeUint16(uint16(n))
	default:
		e.writeByte(start + 2)
		e.writeUint32(uint32(n))
	}
	e.write(b)
	return nil
}

func (e *Encoder) encodeSequence(items []any, depth int) error {
	if err := e.writeContainerLength(len(items), fixarrayLow, tagArray16); err != nil {
		return err
	}
	for _, item := range items {
		if err := e.encode(item, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeMapping(m map[any]any, depth int) error {
	// A nil key marks an absent slot and is skipped; the count field must
	// equal the number of pairs actually written.
	n := len(m)
	if _, ok := m[nil]; ok {
		n--
	}
	if err := e.writeContainerLength(n, fixmapLow, tagMap16); err != nil {
		return err
	}
	for k, v := range m {
		if k == nil {
			continue
		}
		if err := e.encode(k, depth+1); err != nil {
			return err
		}
		if err := e.encode(v, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// writeContainerLength emits an array or map header: an inline nibble count
// for lengths up to 15, else the 16- or 32-bit tagged form.
func (e *Encoder) writeContainerLength(n int, inlineTag, wideTag byte) error {
	switch {
	case n <= 15:
		e.writeByte(inlineTag | byte(n))
	case n <= math.MaxUint16:
		e.writeByte(wideTag)
		e.writeUint16(uint16(n))
	case uint64(n) <= math.MaxUint32:
		e.writeByte(wideTag + 1)
		e.writeUint32(uint32(n))
	default:
		return ErrOversize
	}
	return nil
}

// Sink writes cannot fail (see Sink), so the byte-level writers do not
// return errors.

func (e *Encoder) writeByte(b byte) {
	_ = e.sink.WriteByte(b)
}

func (e *Encoder) write(b []byte) {
	_, _ = e.sink.Write(b)
}

func (e *Encoder) writeUint16(v uint16) {
	binary.BigEndian.PutUint16(e.scratch[:2], v)
	e.write(e.scratch[:2])
}

func (e *Encoder) writeUint32(v uint32) {
	binary.BigEndian.PutUint32(e.scratch[:4], v)
	e.write(e.scratch[:4])
}

func (e *Encoder) writeUint64(v uint64) {
	binary.BigEndian.PutUint64(e.scratch[:8], v)
	e.write(e.scratch[:8])
}
