package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"below one chunk rounds up", "abc", 1},
		{"exact chunk", "abcd", 1},
		{"one over rounds up", "abcde", 2},
		{"longer text", strings.Repeat("a", 4000), 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Estimate(tt.text))
		})
	}
}

func TestEstimateMonotonic(t *testing.T) {
	prev := 0
	for i := 0; i < 200; i++ {
		got := Estimate(strings.Repeat("x", i))
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}
