package valueobjects

import (
	"math"
	"testing"
)

func TestFileSize_Format(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.0 B"},
		{1, "1.0 B"},
		{1023, "1023.0 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1 << 20, "1.0 MB"},
		{5*1<<30 + 1<<29, "5.5 GB"},
		{1 << 40, "1.0 TB"},
		{math.MaxInt64, "8.0 EB"},
		{-10, "0.0 B"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FileSize(tt.bytes).Format(); got != tt.want {
				t.Errorf("FileSize(%d).Format() = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFileSize_FormatIsDeterministicAndMonotonic(t *testing.T) {
	unitIndex := func(s string) int {
		for i, u := range sizeUnits {
			if len(s) > len(u) && s[len(s)-len(u)-1:] == " "+u {
				return i
			}
		}
		return len(sizeUnits)
	}

	prev := 0
	for b := int64(0); b < 1<<22; b += 997 {
		first := FileSize(b).Format()
		if second := FileSize(b).Format(); first != second {
			t.Fatalf("Format(%d) not deterministic: %q vs %q", b, first, second)
		}
		idx := unitIndex(first)
		if idx < prev {
			t.Fatalf("unit went down at %d: %q", b, first)
		}
		prev = idx
	}
}

func TestNewFileSize(t *testing.T) {
	if got := NewFileSize(-1); !got.IsZero() {
		t.Errorf("NewFileSize(-1) = %d, want 0", got)
	}
	if got := NewFileSize(2048).Bytes(); got != 2048 {
		t.Errorf("Bytes() = %d, want 2048", got)
	}
}
