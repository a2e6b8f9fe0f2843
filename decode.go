package msgpack

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
)

// Unmarshal decodes one value from data using default options. Trailing
// bytes after the value are not an error; use a Decoder to see them.
func Unmarshal(data []byte) (any, error) {
	return NewDecoder(data).Decode()
}

// UnmarshalWith decodes one value from data using the given options.
func UnmarshalWith(data []byte, opts DecodeOptions) (any, error) {
	dec := NewDecoder(data)
	dec.Opts = opts
	return dec.Decode()
}

// Decoder reads values from a complete, in-memory byte slice. It does not
// copy the slice; decoded []byte values are copies, so the input may be
// reused after decoding.
type Decoder struct {
	// Opts may be set before the first Decode call.
	Opts DecodeOptions

	data []byte
	pos  int
}

// NewDecoder returns a Decoder positioned at the start of data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Decode reads one value (including everything nested in it) and advances
// past the bytes consumed. On error the position is unspecified and the
// Decoder must be discarded.
func (d *Decoder) Decode() (any, error) {
	return d.decode(d.Opts, 0)
}

// Rest returns the bytes not yet consumed.
func (d *Decoder) Rest() []byte {
	return d.data[d.pos:]
}

func (d *Decoder) decode(opts DecodeOptions, depth int) (any, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	start := d.pos
	tag, err := d.readByte()
	if err != nil {
		return nil, err
	}

	// Fixed forms carry their payload in the tag byte itself.
	switch {
	case tag <= posFixintHigh:
		return int64(tag), nil
	case tag >= negFixintLow:
		return int64(int8(tag)), nil
	case tag >= fixstrLow && tag <= fixstrHigh:
		return d.decodeString(int(tag&fixstrMask), opts.Str)
	case tag >= fixarrayLow && tag <= fixarrayHigh:
		return d.decodeArray(int(tag&fixarrayMask), opts, depth)
	case tag >= fixmapLow && tag <= fixmapHigh:
		return d.decodeMap(int(tag&fixmapMask), opts, depth)
	}

	switch tag {
	case tagNil:
		return nil, nil
	case tagFalse:
		return false, nil
	case tagTrue:
		return true, nil

	case tagUint8, tagUint16, tagUint32, tagUint64:
		u, err := d.readUint(1 << (tag - tagUint8))
		if err != nil {
			return nil, err
		}
		// The unsigned variant is only distinguished when int64 cannot
		// hold the value.
		if u > math.MaxInt64 {
			return u, nil
		}
		return int64(u), nil

	case tagInt8, tagInt16, tagInt32, tagInt64:
		width := 1 << (tag - tagInt8)
		u, err := d.readUint(width)
		if err != nil {
			return nil, err
		}
		// Sign-extend from the wire width.
		shift := 64 - 8*width
		return int64(u<<shift) >> shift, nil

	case tagFloat32:
		u, err := d.readUint(4)
		if err != nil {
			return nil, err
		}
		// Widened by plain conversion; no attempt to recover a value that
		// would re-encode to the same 32-bit pattern.
		return float64(math.Float32frombits(uint32(u))), nil
	case tagFloat64:
		u, err := d.readUint(8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(u), nil

	case tagStr8, tagStr16, tagStr32:
		n, err := d.readLength(1 << (tag - tagStr8))
		if err != nil {
			return nil, err
		}
		return d.decodeString(n, opts.Str)

	case tagBin8, tagBin16, tagBin32:
		n, err := d.readLength(1 << (tag - tagBin8))
		if err != nil {
			return nil, err
		}
		return d.decodeBin(n, opts.Bin)

	case tagArray16, tagArray32:
		n, err := d.readLength(2 << (tag - tagArray16))
		if err != nil {
			return nil, err
		}
		return d.decodeArray(n, opts, depth)

	case tagMap16, tagMap32:
		n, err := d.readLength(2 << (tag - tagMap16))
		if err != nil {
			return nil, err
		}
		return d.decodeMap(n, opts, depth)
	}

	// 0xc1 and the ext family: valid tag space, but nothing to map them to.
	return nil, &SyntaxError{
		Offset: start,
		msg:    fmt.Sprintf("unexpected %s tag 0x%02x", tagName(tag), tag),
	}
}

func (d *Decoder) decodeString(n int, as StrType) (any, error) {
	b, err := d.readN(n)
	if err != nil {
		return nil, err
	}
	switch as {
	case StrKeyword:
		return Keyword(b), nil
	case StrSymbol:
		return Symbol(b), nil
	case StrBuffer:
		return append([]byte(nil), b...), nil
	default:
		return string(b), nil
	}
}

func (d *Decoder) decodeBin(n int, as BinType) (any, error) {
	b, err := d.readN(n)
	if err != nil {
		return nil, err
	}
	if as == BinString {
		return string(b), nil
	}
	return append([]byte(nil), b...), nil
}

func (d *Decoder) decodeArray(n int, opts DecodeOptions, depth int) (any, error) {
	// Cap the preallocation by the bytes left: every element takes at least
	// one, so a hostile length cannot force a huge allocation up front.
	items := make([]any, 0, min(n, len(d.data)-d.pos))
	for i := 0; i < n; i++ {
		item, err := d.decode(opts, depth+1)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if opts.Array == ArrayTuple {
		return Tuple(items), nil
	}
	return items, nil
}

func (d *Decoder) decodeMap(n int, opts DecodeOptions, depth int) (any, error) {
	// Map keys are keywords by default, whatever the caller configured for
	// str. Values (and anything nested in either) see the caller's options.
	keyOpts := opts
	keyOpts.Str = StrKeyword

	m := make(map[any]any, min(n, (len(d.data)-d.pos)/2))
	for i := 0; i < n; i++ {
		k, err := d.decode(keyOpts, depth+1)
		if err != nil {
			return nil, err
		}
		switch k.(type) {
		case []byte, []any, Tuple, map[any]any, Struct:
			// Janet can key tables by any value; Go maps cannot.
			return nil, &UnsupportedTypeError{Type: reflect.TypeOf(k)}
		}
		v, err := d.decode(opts, depth+1)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	if opts.Map == MapStruct {
		return Struct(m), nil
	}
	return m, nil
}

func (d *Decoder) readByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, &SyntaxError{Offset: d.pos, msg: "unexpected end of input"}
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

func (d *Decoder) readN(n int) ([]byte, error) {
	if n > len(d.data)-d.pos {
		return nil, &SyntaxError{Offset: d.pos, msg: "unexpected end of input"}
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

// readUint reads a big-endian unsigned integer of 1, 2, 4, or 8 bytes.
func (d *Decoder) readUint(width int) (uint64, error) {
	b, err := d.readN(width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(b)), nil
	default:
		return binary.BigEndian.Uint64(b), nil
	}
}

// readLength reads a 1-, 2-, or 4-byte length field. Lengths that overflow
// a signed 32-bit size are malformed no matter the platform.
func (d *Decoder) readLength(width int) (int, error) {
	start := d.pos
	u, err := d.readUint(width)
	if err != nil {
		return 0, err
	}
	if u > math.MaxInt32 {
		return 0, &SyntaxError{Offset: start, msg: fmt.Sprintf("length %d overflows", u)}
	}
	return int(u), nil
}
