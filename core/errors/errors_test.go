package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with path and element",
			err:      &ParseError{Path: "doc.ttx", Element: "Raw", Message: "element missing"},
			wantMsg:  "failed to parse TTX at doc.ttx: Raw: element missing",
			wantBase: ErrParse,
		},
		{
			name:     "with path only",
			err:      &ParseError{Path: "doc.ttx", Message: "unexpected EOF"},
			wantMsg:  "failed to parse TTX at doc.ttx: unexpected EOF",
			wantBase: ErrParse,
		},
		{
			name:     "with element only",
			err:      &ParseError{Element: "FrontMatter", Message: "element missing"},
			wantMsg:  "failed to parse TTX: FrontMatter: element missing",
			wantBase: ErrParse,
		},
		{
			name:     "bare",
			err:      &ParseError{Message: "not well-formed"},
			wantMsg:  "failed to parse TTX: not well-formed",
			wantBase: ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("xml: syntax error")
		err := &ParseError{Path: "doc.ttx", Message: "bad markup", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestEncodingError(t *testing.T) {
	underlying := fmt.Errorf("odd byte count")

	tests := []struct {
		name    string
		err     *EncodingError
		wantMsg string
	}{
		{
			name:    "with path",
			err:     &EncodingError{Operation: "decode", Encoding: "UTF-16LE", Path: "doc.ttx", Err: underlying},
			wantMsg: "failed to decode UTF-16LE at doc.ttx: odd byte count",
		},
		{
			name:    "without path",
			err:     &EncodingError{Operation: "encode", Encoding: "UTF-16LE", Err: underlying},
			wantMsg: "failed to encode UTF-16LE: odd byte count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); got != underlying {
				t.Errorf("Unwrap() = %v, want %v", got, underlying)
			}
		})
	}

	t.Run("sentinel without underlying", func(t *testing.T) {
		err := &EncodingError{Operation: "decode", Encoding: "UTF-16LE"}
		if !errors.Is(err, ErrEncoding) {
			t.Error("EncodingError should match ErrEncoding")
		}
	})
}

func TestNoTargetPathError(t *testing.T) {
	err := NewNoTargetPath("write")
	want := "cannot write: no target path given and none remembered"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrNoTargetPath) {
		t.Error("NoTargetPathError should match ErrNoTargetPath")
	}

	bare := &NoTargetPathError{}
	if got := bare.Error(); got != "no target path given and none remembered" {
		t.Errorf("Error() = %q", got)
	}
}

func TestInvalidAttributeError(t *testing.T) {
	err := NewInvalidAttribute("MatchPercent", "high", nil)
	want := `invalid MatchPercent attribute: "high" is not numeric`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidAttribute) {
		t.Error("InvalidAttributeError should match ErrInvalidAttribute")
	}
}

func TestConstructors(t *testing.T) {
	pe := NewParse("a.ttx", "Body", "missing")
	if pe.Path != "a.ttx" || pe.Element != "Body" || pe.Message != "missing" {
		t.Errorf("NewParse populated wrong fields: %+v", pe)
	}

	ee := NewEncoding("decode", "UTF-16LE", "a.ttx", fmt.Errorf("boom"))
	if ee.Operation != "decode" || ee.Encoding != "UTF-16LE" || ee.Path != "a.ttx" {
		t.Errorf("NewEncoding populated wrong fields: %+v", ee)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	base := errors.New("base")
	wrapped := Wrap(base, "loading settings")
	if wrapped.Error() != "loading settings: base" {
		t.Errorf("Wrap() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match base")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	base := errors.New("base")
	wrapped := Wrapf(base, "segment %d", 3)
	if wrapped.Error() != "segment 3: base" {
		t.Errorf("Wrapf() = %q", wrapped.Error())
	}
}

func TestIsAs(t *testing.T) {
	err := NewParse("", "Raw", "missing")
	if !Is(err, ErrParse) {
		t.Error("Is() should match ErrParse")
	}

	var pe *ParseError
	if !As(err, &pe) {
		t.Error("As() should extract *ParseError")
	}
	if pe.Element != "Raw" {
		t.Errorf("As() extracted wrong value: %+v", pe)
	}
}
