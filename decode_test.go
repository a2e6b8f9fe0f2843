package msgpack

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeScalars(t *testing.T) {
	for _, test := range []struct {
		name   string
		input  []byte
		expect any
	}{
		{name: "nil", input: []byte{0xc0}, expect: nil},
		{name: "false", input: []byte{0xc2}, expect: false},
		{name: "true", input: []byte{0xc3}, expect: true},
		{name: "positive fixint", input: []byte{0x7f}, expect: int64(127)},
		{name: "negative fixint", input: []byte{0xff}, expect: int64(-1)},
		{name: "negative fixint low", input: []byte{0xe0}, expect: int64(-32)},
		{name: "uint8", input: []byte{0xcc, 0x80}, expect: int64(128)},
		{name: "uint16", input: []byte{0xcd, 0x01, 0x00}, expect: int64(256)},
		{name: "uint32", input: []byte{0xce, 0xff, 0xff, 0xff, 0xff}, expect: int64(4294967295)},
		{name: "uint64 in int64 range", input: []byte{0xcf, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00}, expect: int64(256)},
		{name: "int8", input: []byte{0xd0, 0xdf}, expect: int64(-33)},
		{name: "int8 min", input: []byte{0xd0, 0x80}, expect: int64(-128)},
		{name: "int16", input: []byte{0xd1, 0xff, 0x7f}, expect: int64(-129)},
		{name: "int32", input: []byte{0xd2, 0x80, 0x00, 0x00, 0x00}, expect: int64(-2147483648)},
		{name: "int64", input: []byte{0xd3, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, expect: int64(math.MinInt64)},
		{name: "float64", input: []byte{0xcb, 0x3f, 0xf8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, expect: 1.5},
		{name: "float32 widened", input: []byte{0xca, 0x3f, 0xc0, 0x00, 0x00}, expect: 1.5},
		{name: "fixstr", input: []byte{0xa2, 'h', 'i'}, expect: "hi"},
		{name: "str8", input: append([]byte{0xd9, 0x02}, 'h', 'i'), expect: "hi"},
		{name: "str16", input: append([]byte{0xda, 0x00, 0x02}, 'h', 'i'), expect: "hi"},
		{name: "str32", input: append([]byte{0xdb, 0x00, 0x00, 0x00, 0x02}, 'h', 'i'), expect: "hi"},
		{name: "bin8", input: []byte{0xc4, 0x02, 0x01, 0x02}, expect: []byte{0x01, 0x02}},
		{name: "bin16", input: []byte{0xc5, 0x00, 0x01, 0xaa}, expect: []byte{0xaa}},
		{name: "bin32", input: []byte{0xc6, 0x00, 0x00, 0x00, 0x01, 0xaa}, expect: []byte{0xaa}},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := Unmarshal(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.expect, got)
		})
	}
}

func TestDecodeUint64Distinguished(t *testing.T) {
	// Values int64 cannot hold decode to the unsigned 64-bit variant.
	got, err := Unmarshal([]byte{0xcf, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), got)

	got, err = Unmarshal([]byte{0xcf, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<63, got)

	got, err = Unmarshal([]byte{0xcf, 0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got)
}

func TestDecodeStrConfiguration(t *testing.T) {
	input := []byte{0xa2, 'h', 'i'}

	for _, test := range []struct {
		name   string
		as     StrType
		expect any
	}{
		{name: "string", as: StrString, expect: "hi"},
		{name: "keyword", as: StrKeyword, expect: Keyword("hi")},
		{name: "symbol", as: StrSymbol, expect: Symbol("hi")},
		{name: "buffer", as: StrBuffer, expect: []byte("hi")},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := UnmarshalWith(input, DecodeOptions{Str: test.as})
			require.NoError(t, err)
			assert.Equal(t, test.expect, got)
		})
	}
}

func TestDecodeBinConfiguration(t *testing.T) {
	input := []byte{0xc4, 0x02, 'h', 'i'}

	got, err := Unmarshal(input)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), got)

	got, err = UnmarshalWith(input, DecodeOptions{Bin: BinString})
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func TestDecodeBufferDoesNotAliasInput(t *testing.T) {
	input := []byte{0xc4, 0x02, 'h', 'i'}
	got, err := Unmarshal(input)
	require.NoError(t, err)

	buf := got.([]byte)
	buf[0] = 'X'
	assert.Equal(t, byte('h'), input[2])
}

func TestDecodeArray(t *testing.T) {
	t.Run("default is mutable", func(t *testing.T) {
		got, err := Unmarshal([]byte{0x93, 0x01, 0x02, 0x03})
		require.NoError(t, err)
		assert.Equal(t, []any{int64(1), int64(2), int64(3)}, got)
	})

	t.Run("tuple", func(t *testing.T) {
		got, err := UnmarshalWith([]byte{0x93, 0x01, 0x02, 0x03}, DecodeOptions{Array: ArrayTuple})
		require.NoError(t, err)
		assert.Equal(t, Tuple{int64(1), int64(2), int64(3)}, got)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := Unmarshal([]byte{0x90})
		require.NoError(t, err)
		assert.Equal(t, []any{}, got)
	})

	t.Run("array16", func(t *testing.T) {
		input := append([]byte{0xdc, 0x00, 0x10}, bytes.Repeat([]byte{0x00}, 16)...)
		got, err := Unmarshal(input)
		require.NoError(t, err)
		require.Len(t, got, 16)
	})
}

func TestDecodeMapKeysAreKeywords(t *testing.T) {
	// encode {"a": 1}, decode with defaults: the key comes back as the
	// keyword :a even though "a" went out as a plain string.
	data, err := Marshal(map[any]any{"a": 1})
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, map[any]any{Keyword("a"): int64(1)}, got)
}

func TestDecodeMapKeyOverrideScope(t *testing.T) {
	// {"k": ["s", {"n": "v"}]} with str configured to symbol: direct keys
	// of each map are still keywords, while every str value follows the
	// configuration.
	data, err := Marshal(map[any]any{
		"k": []any{"s", map[any]any{"n": "v"}},
	})
	require.NoError(t, err)

	got, err := UnmarshalWith(data, DecodeOptions{Str: StrSymbol})
	require.NoError(t, err)
	assert.Equal(t, map[any]any{
		Keyword("k"): []any{Symbol("s"), map[any]any{Keyword("n"): Symbol("v")}},
	}, got)
}

func TestDecodeMapConfiguration(t *testing.T) {
	input := []byte{0x81, 0xa1, 'a', 0x01}

	got, err := UnmarshalWith(input, DecodeOptions{Map: MapStruct})
	require.NoError(t, err)
	assert.Equal(t, Struct{Keyword("a"): int64(1)}, got)
}

func TestDecodeMapNonHashableKey(t *testing.T) {
	// A map keyed by an array decodes fine in Janet, but Go maps cannot
	// hold it.
	for _, input := range [][]byte{
		{0x81, 0x90, 0x01},             // [] as key
		{0x81, 0xc4, 0x01, 0xaa, 0x01}, // bin as key
		{0x81, 0x80, 0x01},             // {} as key
	} {
		_, err := Unmarshal(input)
		var unsupported *UnsupportedTypeError
		require.ErrorAs(t, err, &unsupported, "input % x", input)
	}
}

func TestDecodeTruncated(t *testing.T) {
	for _, test := range []struct {
		name  string
		input []byte
	}{
		{name: "empty", input: []byte{}},
		{name: "fixstr payload", input: []byte{0xa2, 'h'}},
		{name: "uint8 payload", input: []byte{0xcc}},
		{name: "uint16 payload", input: []byte{0xcd, 0x01}},
		{name: "uint64 payload", input: []byte{0xcf, 0x00, 0x00}},
		{name: "int32 payload", input: []byte{0xd2, 0x00}},
		{name: "float64 payload", input: []byte{0xcb, 0x3f}},
		{name: "str8 length", input: []byte{0xd9}},
		{name: "str8 payload", input: []byte{0xd9, 0x05, 'a'}},
		{name: "bin16 length", input: []byte{0xc5, 0x00}},
		{name: "bin16 payload", input: []byte{0xc5, 0x00, 0x02, 0xaa}},
		{name: "array element", input: []byte{0x92, 0x01}},
		{name: "array16 count", input: []byte{0xdc, 0x00}},
		{name: "map value", input: []byte{0x81, 0xa1, 'a'}},
		{name: "map32 count", input: []byte{0xdf, 0x00, 0x00}},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Unmarshal(test.input)
			var syntax *SyntaxError
			require.ErrorAs(t, err, &syntax)
			assert.Contains(t, syntax.Error(), "end of input")
		})
	}
}

func TestDecodeReservedAndExtTags(t *testing.T) {
	for _, tag := range []byte{0xc1, 0xc7, 0xc8, 0xc9, 0xd4, 0xd5, 0xd6, 0xd7, 0xd8} {
		_, err := Unmarshal([]byte{tag, 0x00, 0x00, 0x00})
		var syntax *SyntaxError
		require.ErrorAs(t, err, &syntax, "tag 0x%02x", tag)
		assert.Equal(t, 0, syntax.Offset)
	}
}

func TestDecodeLengthOverflow(t *testing.T) {
	for _, test := range []struct {
		name  string
		input []byte
	}{
		{name: "str32", input: []byte{0xdb, 0xff, 0xff, 0xff, 0xff}},
		{name: "bin32", input: []byte{0xc6, 0x80, 0x00, 0x00, 0x00}},
		{name: "array32", input: []byte{0xdd, 0xff, 0xff, 0xff, 0xff}},
		{name: "map32", input: []byte{0xdf, 0xff, 0xff, 0xff, 0xff}},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Unmarshal(test.input)
			var syntax *SyntaxError
			require.ErrorAs(t, err, &syntax)
			assert.Contains(t, syntax.Error(), "overflows")
		})
	}
}

func TestDecodeHostileArrayLength(t *testing.T) {
	// A declared length far beyond the input must fail on bounds, not
	// allocate by the header's say-so.
	_, err := Unmarshal([]byte{0xdd, 0x7f, 0xff, 0xff, 0xff})
	var syntax *SyntaxError
	require.ErrorAs(t, err, &syntax)
}

func TestDecodeTooDeep(t *testing.T) {
	t.Run("at the guard", func(t *testing.T) {
		input := append(bytes.Repeat([]byte{0x91}, MaxDepth), 0xc0)
		_, err := Unmarshal(input)
		require.NoError(t, err)
	})

	t.Run("past the guard", func(t *testing.T) {
		input := append(bytes.Repeat([]byte{0x91}, MaxDepth+1), 0xc0)
		_, err := Unmarshal(input)
		require.ErrorIs(t, err, ErrTooDeep)
	})

	t.Run("alternating containers", func(t *testing.T) {
		var input []byte
		for i := 0; i < MaxDepth; i++ {
			if i%2 == 0 {
				input = append(input, 0x91)
			} else {
				input = append(input, 0x81, 0xa1, 'k')
			}
		}
		input = append(input, 0x91)
		_, err := Unmarshal(input)
		require.ErrorIs(t, err, ErrTooDeep)
	})
}

func TestDecodeTrailingBytes(t *testing.T) {
	dec := NewDecoder([]byte{0xc0, 0xc3, 0x2a})

	got, err := dec.Decode()
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, []byte{0xc3, 0x2a}, dec.Rest())

	got, err = dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, true, got)

	got, err = dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)
	assert.Empty(t, dec.Rest())

	_, err = dec.Decode()
	var syntax *SyntaxError
	require.ErrorAs(t, err, &syntax)
}

func TestConfigurationIndependence(t *testing.T) {
	// Text written under the bin wire category is recovered as a string by
	// configuring the decoder, independent of how it was encoded.
	data, err := MarshalWith("round and round", EncodeOptions{String: FormatBin})
	require.NoError(t, err)
	require.Equal(t, byte(0xc4), data[0])

	got, err := UnmarshalWith(data, DecodeOptions{Bin: BinString})
	require.NoError(t, err)
	assert.Equal(t, "round and round", got)
}

func TestDecodeSyntaxErrorOffset(t *testing.T) {
	// [1, <truncated str>] fails at the payload of the inner str.
	_, err := Unmarshal([]byte{0x92, 0x01, 0xa5, 'x'})
	var syntax *SyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, 3, syntax.Offset)
}
