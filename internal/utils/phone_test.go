package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0157 1234567", "+491571234567"},
		{"+49 157 1234567", "+491571234567"},
		{"49 157 1234567", "+491571234567"},
		{"157-1234567", "+491571234567"},
		{"(0157) 123 45 67", "+491571234567"},
		{"+49 (0)30 901820", "+49030901820"}, // heuristic keeps the inner trunk digit
		{"", ""},
		{"abc", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, NormalizePhone(tc.in), "input %q", tc.in)
	}
}
