package encoding

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/FocuswithJustin/ttx/core/errors"
)

// utf16Name is the encoding name reported in EncodingError values.
const utf16Name = "UTF-16LE"

var (
	bomLE = []byte{0xFF, 0xFE}
	bomBE = []byte{0xFE, 0xFF}
)

// HasUTF16BOM reports whether data starts with a UTF-16 byte-order mark
// of either endianness.
func HasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, bomLE) || bytes.HasPrefix(data, bomBE)
}

// EncodeUTF16LE converts UTF-8 bytes to UTF-16 little-endian with a
// leading byte-order mark, the on-disk encoding TagEditor requires.
func EncodeUTF16LE(data []byte) ([]byte, error) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	out, _, err := transform.Bytes(enc, data)
	if err != nil {
		return nil, errors.NewEncoding("encode", utf16Name, "", err)
	}
	return out, nil
}

// DecodeUTF16 converts UTF-16 bytes to UTF-8, honoring a byte-order mark
// of either endianness and assuming little-endian when none is present.
// The returned bytes carry no BOM.
func DecodeUTF16(data []byte) ([]byte, error) {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return nil, errors.NewEncoding("decode", utf16Name, "", err)
	}
	return out, nil
}
