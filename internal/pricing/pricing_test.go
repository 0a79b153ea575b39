package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStrings(t *testing.T) {
	s := DefaultStrategy()

	tests := []struct {
		in       string
		wantBase string
		wantList string
	}{
		{"19.99", "18.99", "23.99"},
		{"20", "19.99", "24.99"},
		{"$1,000.00", "999.99", "1249.99"},
		{"1.00", "0.99", "1.00"},
		{"0.50", "0.01", "0.02"},
		{"0", "0.01", "0.02"},
		{"", "", ""},
		{"free", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			base, list := s.ComputeStrings(tt.in)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantList, list)
		})
	}
}

func TestListAlwaysAboveBase(t *testing.T) {
	s := DefaultStrategy()
	for _, in := range []string{"0.01", "1", "1.5", "3.99", "4", "7.77", "250"} {
		p, ok := s.Compute(in)
		if assert.True(t, ok, in) {
			assert.True(t, p.List.GreaterThan(p.Base), in)
		}
	}
}

func TestNewStrategy(t *testing.T) {
	s := NewStrategy(0, 2)
	base, list := s.ComputeStrings("10")
	assert.Equal(t, "9.99", base)
	assert.Equal(t, "19.99", list)

	d := NewStrategy(-1, 0)
	assert.True(t, d.BaseMultiplier.Equal(DefaultStrategy().BaseMultiplier))
	assert.True(t, d.ListMultiplier.Equal(DefaultStrategy().ListMultiplier))
}
