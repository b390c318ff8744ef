package bits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitLog32(t *testing.T) {
	tests := []struct {
		name string
		in   uint32
		want int
	}{
		{"zero", 0, -1},
		{"one", 1, 0},
		{"two", 2, 1},
		{"seven", 7, 2},
		{"power of two", 1 << 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BitLog32(tt.in))
		})
	}
}

func TestReverseBits8(t *testing.T) {
	assert.Equal(t, uint8(0x00), ReverseBits8(0x00))
	assert.Equal(t, uint8(0xFF), ReverseBits8(0xFF))
	assert.Equal(t, uint8(0x01), ReverseBits8(0x80))
	assert.Equal(t, uint8(0x0F), ReverseBits8(0xF0))
}

func TestReverseBits32RoundTrip(t *testing.T) {
	x := uint32(0x12345678)
	assert.Equal(t, x, ReverseBits32(ReverseBits32(x)))
}

func TestPopulationCount(t *testing.T) {
	assert.Equal(t, 0, PopulationCount64(0))
	assert.Equal(t, 64, PopulationCount64(^uint64(0)))
	assert.Equal(t, 4, PopulationCount32(0b1111))
}

type flag int

const (
	flagRead flag = iota
	flagWrite
	flagExec
)

func TestSmallSet(t *testing.T) {
	s := Of(flagRead, flagExec)
	assert.True(t, s.Contains(flagRead))
	assert.False(t, s.Contains(flagWrite))
	assert.Equal(t, 2, s.Len())

	s = s.With(flagWrite)
	assert.Equal(t, 3, s.Len())

	s = s.Without(flagRead)
	assert.False(t, s.Contains(flagRead))
}
