package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderConfirmer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "y", input: "y\n", want: true},
		{name: "upper Y", input: "Y\n", want: true},
		{name: "yes with spaces", input: "  yes \n", want: true},
		{name: "no newline at EOF", input: "y", want: true},
		{name: "n", input: "n\n"},
		{name: "empty line", input: "\n"},
		{name: "anything else", input: "sure\n"},
		{name: "EOF", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewReaderConfirmer(strings.NewReader(tt.input), &out)

			ok, err := c.Confirm("Continue?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.True(t, strings.HasPrefix(out.String(), "Continue? (y/N): "))
		})
	}
}

func TestReaderConfirmer_NilInput(t *testing.T) {
	ok, err := NewReaderConfirmer(nil, &bytes.Buffer{}).Confirm("Continue?")
	require.NoError(t, err)
	assert.False(t, ok)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestReaderConfirmer_ReadError(t *testing.T) {
	ok, err := NewReaderConfirmer(failingReader{}, &bytes.Buffer{}).Confirm("Continue?")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNew_NonTerminal(t *testing.T) {
	assert.IsType(t, &ReaderConfirmer{}, New(nil, &bytes.Buffer{}))
}
