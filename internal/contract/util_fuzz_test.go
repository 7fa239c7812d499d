package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncateText fuzzes TruncateText with random text and widths.
func FuzzTruncateText(f *testing.F) {
	seeds := []struct {
		text  string
		width int
	}{
		{"Alice", 10},
		{"A very long leader name indeed", 12},
		{"", 0},
		{"報告書", 4},
		{"abc", -1},
	}
	for _, seed := range seeds {
		f.Add(seed.text, seed.width)
	}

	f.Fuzz(func(t *testing.T, text string, width int) {
		got := TruncateText(text, width)
		if width > 3 && utf8.RuneCountInString(got) > width {
			t.Errorf("TruncateText(%q, %d) = %q exceeds width", text, width, got)
		}
	})
}

// FuzzParseBoolString ensures ParseBoolString never panics.
func FuzzParseBoolString(f *testing.F) {
	for _, s := range []string{"yes", "no", "1", "0", "TrUe", ""} {
		f.Add(s)
	}
	f.Fuzz(func(_ *testing.T, s string) {
		_, _ = ParseBoolString(s)
	})
}
