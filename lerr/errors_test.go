package lerr

import "testing"

func TestErrorString(t *testing.T) {
	err := ParseError("unexpected token")
	if got := err.Error(); got != "ParseError: unexpected token" {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrorStringWithPosition(t *testing.T) {
	err := ParseErrorAt(4, 2, "unexpected token")
	want := "ParseError at 4:2: unexpected token"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := StyleValueError("bad weight")
	if !Is(err, StyleValueErrorKind) {
		t.Error("Is() should match StyleValueErrorKind")
	}
	if Is(err, ParseErrorKind) {
		t.Error("Is() should not match an unrelated kind")
	}
}

func TestShapingErrorUnwraps(t *testing.T) {
	cause := ParseError("inner")
	err := ShapingError("shaper failed", cause)
	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		ParseErrorKind:            "ParseError",
		StyleValueErrorKind:       "StyleValueError",
		FontResolutionErrorKind:   "FontResolutionError",
		UnsupportedInlineNodeKind: "UnsupportedInlineNode",
		LayoutBudgetExceededKind:  "LayoutBudgetExceeded",
		ShapingErrorKind:          "ShapingError",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
