package bbcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseListKind(t *testing.T) {
	testCases := []struct {
		attr string
		want ListKind
		ok   bool
	}{
		{attr: "", want: ListBullet, ok: true},
		{attr: " 1 ", want: ListNumeric, ok: true},
		{attr: "a", want: ListAlpha, ok: true},
		{attr: "A", want: ListAlpha, ok: true},
		{attr: "I", want: ListUpperRoman, ok: true},
		{attr: "i", want: ListLowerRoman, ok: true},
		{attr: "2", want: ListBullet, ok: false},
		{attr: "disc", want: ListBullet, ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.attr, func(t *testing.T) {
			got, ok := ParseListKind(tc.attr)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestListKind_Marker(t *testing.T) {
	require.Equal(t, "• ", ListBullet.Marker(5))
	require.Equal(t, "1. ", ListNumeric.Marker(0))
	require.Equal(t, "12. ", ListNumeric.Marker(11))

	require.Equal(t, "a. ", ListAlpha.Marker(0))
	require.Equal(t, "z. ", ListAlpha.Marker(25))
	require.Equal(t, "aa. ", ListAlpha.Marker(26))

	require.Equal(t, "I. ", ListUpperRoman.Marker(0))
	require.Equal(t, "IV. ", ListUpperRoman.Marker(3))
	require.Equal(t, "XIV. ", ListUpperRoman.Marker(13))
	require.Equal(t, "mcmxc. ", ListLowerRoman.Marker(1989))
}
