package tools

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeWhatsAppTo(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"+55 (11) 99999-9999", "5511999999999", false},
		{"11999999999", "5511999999999", false},
		{"1199999999", "551199999999", false},
		{"5511999999999", "5511999999999", false},
		{"", "", true},
		{"123", "", true},
	}

	for _, tc := range cases {
		got, err := NormalizeWhatsAppTo(tc.in)
		if tc.wantErr {
			require.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
