package prompt

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockPrompter implements Prompter interface for testing
type MockPrompter struct {
	err          error
	answer       string
	promptCalled bool
}

func (m *MockPrompter) Prompt(_ string) (string, error) {
	m.promptCalled = true
	return m.answer, m.err
}

func (*MockPrompter) Close() error {
	return nil
}

func TestTextInputWithPrompter(t *testing.T) {
	t.Parallel()
	mockPrompter := &MockPrompter{answer: "  123:abc  "}

	result, err := TextInputWithPrompter(mockPrompter, "Enter your Telegram Bot Token:")

	require.NoError(t, err)
	assert.Equal(t, "123:abc", result)
	assert.True(t, mockPrompter.promptCalled)
}

func TestTextInputWithPrompterCancelled(t *testing.T) {
	t.Parallel()
	mockPrompter := &MockPrompter{err: ErrCancelled}

	_, err := TextInputWithPrompter(mockPrompter, "Enter your choice:")

	require.ErrorIs(t, err, ErrCancelled)
}

func TestTextInputWithPrompterWrapsOtherErrors(t *testing.T) {
	t.Parallel()
	mockPrompter := &MockPrompter{err: errors.New("tty gone")}

	_, err := TextInputWithPrompter(mockPrompter, "Enter your choice:")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCancelled)
	assert.Contains(t, err.Error(), "tty gone")
}

func TestReaderPrompter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []string
		wantEOF bool
	}{
		{name: "unix lines", input: "1\n2\n", want: []string{"1", "2"}, wantEOF: true},
		{name: "windows lines", input: "1\r\n2\r\n", want: []string{"1", "2"}, wantEOF: true},
		{name: "last line without newline", input: "1\n555-0100", want: []string{"1", "555-0100"}, wantEOF: true},
		{name: "empty line kept", input: "\n3\n", want: []string{"", "3"}, wantEOF: true},
		{name: "no input", input: "", want: nil, wantEOF: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			p := NewReaderPrompter(strings.NewReader(tt.input), &out)

			var got []string
			for {
				line, err := p.Prompt("> ")
				if err != nil {
					require.ErrorIs(t, err, ErrCancelled)
					break
				}
				got = append(got, line)
			}

			assert.Equal(t, tt.want, got)
			assert.True(t, strings.HasPrefix(out.String(), "> "))
			assert.NoError(t, p.Close())
		})
	}
}

func TestNewUsesReaderForNonTerminal(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	defer func() { _ = w.Close() }()

	p := New(r, &bytes.Buffer{})

	_, ok := p.(*ReaderPrompter)
	assert.True(t, ok, "expected a ReaderPrompter for a pipe")
}
