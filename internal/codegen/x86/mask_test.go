package x86_test

import (
	"math"
	"testing"

	"whilec/internal/codegen/x86"
)

func TestMaskRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 2, 5, 42, 1 << 16, 1<<31 - 1, 1 << 31, math.MaxUint32 - 1, math.MaxUint32}
	keys := []uint32{0, 1, 2, 3, 10, 12345, 1 << 30, 1<<30 + 1, math.MaxUint32}
	for _, key := range keys {
		for _, v := range values {
			if got := x86.Decode(x86.Encode(v, key), key); got != v {
				t.Errorf("Decode(Encode(%d, %d)) = %d", v, key, got)
			}
		}
	}
}

func TestEncodeKnownValues(t *testing.T) {
	tests := []struct {
		v, key, want uint32
	}{
		{5, 0, 5},
		{5, 10, 0},
		{0, 1, 1},
		{math.MaxUint32, 2, 2},
	}
	for _, tt := range tests {
		if got := x86.Encode(tt.v, tt.key); got != tt.want {
			t.Errorf("Encode(%d, %d) = %d, want %d", tt.v, tt.key, got, tt.want)
		}
	}
}
