package msgpack

// Wire tag bytes, as published at https://msgpack.org. Every MessagePack
// value starts with one of these: either a fixed-value tag whose payload is
// embedded in the tag byte itself, or a tag followed by a big-endian length
// or numeric payload.
const (
	posFixintHigh byte = 0x7f

	fixmapLow  byte = 0x80
	fixmapHigh byte = 0x8f
	fixmapMask byte = 0x0f

	fixarrayLow  byte = 0x90
	fixarrayHigh byte = 0x9f
	fixarrayMask byte = 0x0f

	fixstrLow  byte = 0xa0
	fixstrHigh byte = 0xbf
	fixstrMask byte = 0x1f

	tagNil    byte = 0xc0
	tagUnused byte = 0xc1 // reserved by the format, never valid
	tagFalse  byte = 0xc2
	tagTrue   byte = 0xc3

	tagBin8  byte = 0xc4
	tagBin16 byte = 0xc5
	tagBin32 byte = 0xc6

	tagExt8  byte = 0xc7
	tagExt16 byte = 0xc8
	tagExt32 byte = 0xc9

	tagFloat32 byte = 0xca
	tagFloat64 byte = 0xcb

	tagUint8  byte = 0xcc
	tagUint16 byte = 0xcd
	tagUint32 byte = 0xce
	tagUint64 byte = 0xcf

	tagInt8  byte = 0xd0
	tagInt16 byte = 0xd1
	tagInt32 byte = 0xd2
	tagInt64 byte = 0xd3

	tagFixExt1  byte = 0xd4
	tagFixExt2  byte = 0xd5
	tagFixExt4  byte = 0xd6
	tagFixExt8  byte = 0xd7
	tagFixExt16 byte = 0xd8

	tagStr8  byte = 0xd9
	tagStr16 byte = 0xda
	tagStr32 byte = 0xdb

	tagArray16 byte = 0xdc
	tagArray32 byte = 0xdd

	tagMap16 byte = 0xde
	tagMap32 byte = 0xdf

	negFixintLow byte = 0xe0
)

// tagName names the wire category a tag byte belongs to, for diagnostics.
func tagName(tag byte) string {
	switch tag {
	case tagNil:
		return "nil"
	case tagFalse, tagTrue:
		return "bool"
	case tagFloat32:
		return "float32"
	case tagFloat64:
		return "float64"
	case tagUint8, tagUint16, tagUint32, tagUint64:
		return "uint"
	case tagInt8, tagInt16, tagInt32, tagInt64:
		return "int"
	case tagStr8, tagStr16, tagStr32:
		return "str"
	case tagBin8, tagBin16, tagBin32:
		return "bin"
	case tagArray16, tagArray32:
		return "array"
	case tagMap16, tagMap32:
		return "map"
	case tagExt8, tagExt16, tagExt32, tagFixExt1, tagFixExt2, tagFixExt4, tagFixExt8, tagFixExt16:
		return "ext"
	case tagUnused:
		return "reserved"
	}
	switch {
	case tag <= posFixintHigh || tag >= negFixintLow:
		return "int"
	case tag >= fixmapLow && tag <= fixmapHigh:
		return "map"
	case tag >= fixarrayLow && tag <= fixarrayHigh:
		return "array"
	case tag >= fixstrLow && tag <= fixstrHigh:
		return "str"
	}
	return "reserved"
}
