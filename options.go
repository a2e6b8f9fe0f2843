package msgpack

// WireFormat selects the wire category used for string-like values. Janet
// cannot tell the encoder whether a string holds text or raw bytes, so the
// choice is configuration rather than a property of the value.
type WireFormat int

const (
	// FormatDefault uses the per-type default: str for strings, bin for
	// byte buffers.
	FormatDefault WireFormat = iota
	// FormatStr encodes as the str wire category.
	FormatStr
	// FormatBin encodes as the bin wire category.
	FormatBin
)

// EncodeOptions control how ambiguous host types map onto the wire. The zero
// value encodes strings as str and byte buffers as bin. Keywords and symbols
// are not configurable; they always encode as str.
type EncodeOptions struct {
	String WireFormat
	Buffer WireFormat
}

func (o EncodeOptions) stringFormat() WireFormat {
	if o.String == FormatDefault {
		return FormatStr
	}
	return o.String
}

func (o EncodeOptions) bufferFormat() WireFormat {
	if o.Buffer == FormatDefault {
		return FormatBin
	}
	return o.Buffer
}

// StrType selects the host type produced for the str wire category.
type StrType int

const (
	StrString StrType = iota
	StrKeyword
	StrSymbol
	StrBuffer
)

// BinType selects the host type produced for the bin wire category.
type BinType int

const (
	BinBuffer BinType = iota
	BinString
)

// ArrayType selects the mutability of decoded sequences.
type ArrayType int

const (
	ArrayList ArrayType = iota // mutable []any
	ArrayTuple                 // immutable Tuple
)

// MapType selects the mutability of decoded mappings.
type MapType int

const (
	MapTable MapType = iota // mutable map[any]any
	MapStruct               // immutable Struct
)

// DecodeOptions control which host type each wire category decodes to. The
// zero value decodes str to string, bin to []byte, and containers to their
// mutable forms.
//
// Map keys are an exception: while decoding the keys directly owned by a
// map, Str is treated as StrKeyword no matter what the caller configured.
// The override does not apply to the map's values, nor to the keys of any
// container nested inside them; each map applies it afresh to its own keys.
type DecodeOptions struct {
	Str   StrType
	Bin   BinType
	Array ArrayType
	Map   MapType
}

// ParseWireFormat resolves a wire-category name. "str" and "string" name the
// str category; "bin" and "bytes" name bin.
func ParseWireFormat(name string) (WireFormat, error) {
	switch name {
	case "str", "string":
		return FormatStr, nil
	case "bin", "bytes":
		return FormatBin, nil
	}
	return 0, &ConfigError{Option: name, Reason: `not a wire category (want "string" or "bytes")`}
}

// UniformEncodeOptions applies a single wire-category name to both strings
// and byte buffers.
func UniformEncodeOptions(name string) (EncodeOptions, error) {
	format, err := ParseWireFormat(name)
	if err != nil {
		return EncodeOptions{}, err
	}
	return EncodeOptions{String: format, Buffer: format}, nil
}

// EncodeOptionsFromNames builds EncodeOptions from a host-type to
// wire-category name table, e.g. {"string": "bytes"}. Legal keys are
// "string" and "buffer"; legal values are the wire-category names accepted
// by ParseWireFormat. Omitted keys keep their defaults.
func EncodeOptionsFromNames(names map[string]string) (EncodeOptions, error) {
	var opts EncodeOptions
	for key, val := range names {
		format, err := ParseWireFormat(val)
		if err != nil {
			return EncodeOptions{}, err
		}
		switch key {
		case "string":
			opts.String = format
		case "buffer":
			opts.Buffer = format
		default:
			return EncodeOptions{}, &ConfigError{Option: key, Reason: `not an encodable host type (want "string" or "buffer")`}
		}
	}
	return opts, nil
}

// DecodeOptionsFromNames builds DecodeOptions from a wire-category to
// host-type name table, e.g. {"bin": "string", "array": "tuple"}. Legal keys
// are "str"/"string", "bin"/"bytes", "array"/"list", and "map"/"dict".
// Omitted categories keep their defaults.
func DecodeOptionsFromNames(names map[string]string) (DecodeOptions, error) {
	var opts DecodeOptions
	for key, val := range names {
		switch key {
		case "str", "string":
			switch val {
			case "string":
				opts.Str = StrString
			case "keyword":
				opts.Str = StrKeyword
			case "symbol":
				opts.Str = StrSymbol
			case "buffer":
				opts.Str = StrBuffer
			default:
				return DecodeOptions{}, &ConfigError{Option: val, Reason: "str must decode to string, keyword, symbol, or buffer"}
			}
		case "bin", "bytes":
			switch val {
			case "buffer":
				opts.Bin = BinBuffer
			case "string":
				opts.Bin = BinString
			default:
				return DecodeOptions{}, &ConfigError{Option: val, Reason: "bin must decode to buffer or string"}
			}
		case "array", "list":
			switch val {
			case "array":
				opts.Array = ArrayList
			case "tuple":
				opts.Array = ArrayTuple
			default:
				return DecodeOptions{}, &ConfigError{Option: val, Reason: "array must decode to array or tuple"}
			}
		case "map", "dict":
			switch val {
			case "table":
				opts.Map = MapTable
			case "struct":
				opts.Map = MapStruct
			default:
				return DecodeOptions{}, &ConfigError{Option: val, Reason: "map must decode to table or struct"}
			}
		default:
			return DecodeOptions{}, &ConfigError{Option: key, Reason: "not a decodable wire category"}
		}
	}
	return opts, nil
}
