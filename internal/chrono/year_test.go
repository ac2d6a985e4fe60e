package chrono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"1526", 1526, false},
		{" 1206 ", 1206, false},
		{"-499", -499, false},
		{"500 BCE", -499, false},
		{"1 BC", 0, false},
		{"44 B.C.", -43, false},
		{"1526 CE", 1526, false},
		{"AD 800", 800, false},
		{"ad800", 800, false},
		{"0 BCE", 0, true},
		{"0 CE", 0, true},
		{"AD 0", 0, true},
		{"0", 0, false},
		{"AD 5 BC", 0, true},
		{"third century", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseYear(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatYear(t *testing.T) {
	assert.Equal(t, "1526", FormatYear(1526))
	assert.Equal(t, "1 BCE", FormatYear(0))
	assert.Equal(t, "500 BCE", FormatYear(-499))
	assert.Equal(t, "1206 – 1526", FormatRange(1206, intPtr(1526)))
	assert.Equal(t, "1526 – present", FormatRange(1526, nil))
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, year := range []int{-2069, -499, 0, 1, 618, 1526} {
		got, err := ParseYear(FormatYear(year))
		require.NoError(t, err)
		assert.Equal(t, year, got)
	}
}

func TestEventYear(t *testing.T) {
	tests := []struct {
		date     string
		expected int
		ok       bool
	}{
		{"1526-04-21", 1526, true},
		{"0622-07-16", 622, true},
		{"-0043-03-15", -43, true},
		{"1526", 1526, true},
		{"300 BCE", -299, true},
		{"1526-13-01", 0, false},
		{"April 1526", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, ok := EventYear(tt.date)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func intPtr(i int) *int {
	return &i
}
