package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	cases := []struct {
		name       string
		style      Style
		baseURL    string
		signupPath string
		code       string
		want       string
	}{
		{
			name:    "path style",
			style:   StylePath,
			baseURL: "https://api.example.com",
			code:    "abc123xyz",
			want:    "https://api.example.com/r/abc123xyz",
		},
		{
			name:    "path style trims trailing slash",
			style:   StylePath,
			baseURL: "https://api.example.com/",
			code:    "abc123xyz",
			want:    "https://api.example.com/r/abc123xyz",
		},
		{
			name:       "query style with signup path",
			style:      StyleQuery,
			baseURL:    "https://app.example.com",
			signupPath: "signup",
			code:       "abc123xyz",
			want:       "https://app.example.com/signup?ref=abc123xyz",
		},
		{
			name:    "query style without signup path",
			style:   StyleQuery,
			baseURL: "https://app.example.com",
			code:    "abc123xyz",
			want:    "https://app.example.com?ref=abc123xyz",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBuilder(tc.style, tc.baseURL, tc.signupPath)
			require.NoError(t, err)

			assert.Equal(t, tc.want, b.Build(tc.code))
		})
	}
}

func TestNewBuilder_UnknownStyle(t *testing.T) {
	_, err := NewBuilder("fragment", "https://app.example.com", "")
	assert.ErrorIs(t, err, ErrUnknownStyle)
}
