package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain", raw: "octocat", want: "octocat"},
		{name: "trailing space", raw: "octocat ", want: "octocat"},
		{name: "at sign", raw: "@octocat", want: "octocat"},
		{name: "at sign and spaces", raw: "  @octo-cat \t", want: "octo-cat"},
		{name: "single char", raw: "a", want: "a"},
		{name: "digits", raw: "42", want: "42"},
		{name: "max length", raw: strings.Repeat("a", 39), want: strings.Repeat("a", 39)},
		{name: "empty", raw: "", wantErr: true},
		{name: "only at", raw: "@", wantErr: true},
		{name: "leading hyphen", raw: "-octocat", wantErr: true},
		{name: "too long", raw: strings.Repeat("a", 40), wantErr: true},
		{name: "underscore", raw: "octo_cat", wantErr: true},
		{name: "slash", raw: "octo/cat", wantErr: true},
		{name: "inner space", raw: "octo cat", wantErr: true},
		{name: "dot", raw: "octo.cat", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLogin(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsInvalidRequestError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
