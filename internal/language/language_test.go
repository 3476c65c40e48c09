package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"eng", "eng"},
		{"ENG", "eng"},
		{"en", "eng"},
		{" jpn ", "jpn"},
		{"ja", "jpn"},
		{"fre", "fra"},
		{"ger", "deu"},
		{"chi", "zho"},
		{"en-US", "eng"},
		{"pt-BR", "por"},
		{"zh-Hant", "zho"},
		{"und", "und"},
		{"", ""},
		{"n/a", "n/a"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestIsUndetermined(t *testing.T) {
	assert.True(t, IsUndetermined(""))
	assert.True(t, IsUndetermined("und"))
	assert.True(t, IsUndetermined(" UND "))
	assert.False(t, IsUndetermined("eng"))
}
