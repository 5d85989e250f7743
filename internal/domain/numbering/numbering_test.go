package numbering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "COT-2026-0001", Format("COT", 2026, 1))
	assert.Equal(t, "REC-2027-0042", Format("REC", 2027, 42))
	assert.Equal(t, "COT-2026-12345", Format("COT", 2026, 12345))
}

func TestSequence(t *testing.T) {
	tests := []struct {
		number string
		want   int
		ok     bool
	}{
		{"COT-2026-0007", 7, true},
		{"COT-2026-10000", 10000, true},
		{"COT-2025-0007", 0, false},
		{"REC-2026-0007", 0, false},
		{"COT-2026-", 0, false},
		{"COT-2026-abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			got, ok := Sequence(tt.number, "COT", 2026)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatSequenceRoundTrip(t *testing.T) {
	for _, seq := range []int{1, 99, 9999, 10001} {
		got, ok := Sequence(Format("REC", 2026, seq), "REC", 2026)
		assert.True(t, ok)
		assert.Equal(t, seq, got)
	}
}
