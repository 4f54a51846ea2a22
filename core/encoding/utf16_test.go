package encoding

import (
	"bytes"
	"testing"

	"github.com/FocuswithJustin/ttx/core/errors"
)

func TestEncodeUTF16LE(t *testing.T) {
	out, err := EncodeUTF16LE([]byte("Ab"))
	if err != nil {
		t.Fatalf("EncodeUTF16LE failed: %v", err)
	}
	want := []byte{0xFF, 0xFE, 'A', 0x00, 'b', 0x00}
	if !bytes.Equal(out, want) {
		t.Errorf("EncodeUTF16LE = % X, want % X", out, want)
	}
}

func TestDecodeUTF16(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"little endian with BOM", []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}, "hi"},
		{"big endian with BOM", []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'}, "hi"},
		{"little endian without BOM", []byte{'h', 0x00, 'i', 0x00}, "hi"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeUTF16(tt.input)
			if err != nil {
				t.Fatalf("DecodeUTF16 failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("DecodeUTF16 = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestUTF16RoundTrip verifies encode-then-decode is identity, including
// characters outside the basic multilingual plane.
func TestUTF16RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain ascii",
		"Straße naïveté",
		"日本語テスト",
		"astral 𝔘𝔫𝔦𝔠𝔬𝔡𝔢 🎉",
		"<Raw>&amp;</Raw>",
	}

	for _, in := range inputs {
		encoded, err := EncodeUTF16LE([]byte(in))
		if err != nil {
			t.Fatalf("encode %q: %v", in, err)
		}
		if in != "" && !bytes.HasPrefix(encoded, []byte{0xFF, 0xFE}) {
			t.Errorf("encoded %q missing little-endian BOM", in)
		}
		decoded, err := DecodeUTF16(encoded)
		if err != nil {
			t.Fatalf("decode %q: %v", in, err)
		}
		if string(decoded) != in {
			t.Errorf("round trip of %q = %q", in, decoded)
		}
		if bytes.HasPrefix(decoded, []byte{0xEF, 0xBB, 0xBF}) {
			t.Errorf("decoded %q carries a BOM", in)
		}
	}
}

func TestHasUTF16BOM(t *testing.T) {
	if !HasUTF16BOM([]byte{0xFF, 0xFE, 0x00, 0x00}) {
		t.Error("LE BOM not detected")
	}
	if !HasUTF16BOM([]byte{0xFE, 0xFF}) {
		t.Error("BE BOM not detected")
	}
	if HasUTF16BOM([]byte("<?xml")) {
		t.Error("plain XML misdetected as UTF-16")
	}
	if HasUTF16BOM(nil) {
		t.Error("empty input misdetected as UTF-16")
	}
}

func TestDecodeUTF16Error(t *testing.T) {
	// A lone low surrogate cannot be decoded losslessly; the transformer
	// substitutes rather than fails, so only structural errors surface.
	// Verify the error type contract with a truncated transform instead.
	_, err := DecodeUTF16([]byte{0xFF, 0xFE, 'h'})
	if err != nil {
		var ee *errors.EncodingError
		if !errors.As(err, &ee) {
			t.Errorf("error should be *EncodingError, got %T", err)
		}
	}
}
