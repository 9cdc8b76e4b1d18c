// internal/transport/framer_test.go
package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineFramerSplitsOnLF(t *testing.T) {
	f := NewLineFramer()

	lines := f.Push([]byte("a\r\nb\r\nc"))
	assert.Equal(t, []string{"a", "b"}, lines)
	assert.Equal(t, 1, f.Pending())

	lines = f.Push([]byte("\n"))
	assert.Equal(t, []string{"c"}, lines)
	assert.Equal(t, 0, f.Pending())
}

func TestLineFramerChunkBoundaries(t *testing.T) {
	f := NewLineFramer()

	assert.Nil(t, f.Push([]byte("hel")))
	assert.Nil(t, f.Push([]byte("lo wor")))
	lines := f.Push([]byte("ld\r\nnext"))
	assert.Equal(t, []string{"hello world"}, lines)
	assert.Equal(t, 4, f.Pending())
}

func TestLineFramerLineEndings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"bare LF", "one\ntwo\n", []string{"one", "two"}},
		{"CRLF", "one\r\ntwo\r\n", []string{"one", "two"}},
		{"mixed", "one\ntwo\r\n", []string{"one", "two"}},
		{"empty line", "\r\n", []string{""}},
		{"CR inside line kept", "a\rb\n", []string{"a\rb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewLineFramer()
			assert.Equal(t, tt.want, f.Push([]byte(tt.input)))
			assert.Equal(t, 0, f.Pending())
		})
	}
}

func TestLineFramerCRAloneIsNotATerminator(t *testing.T) {
	f := NewLineFramer()

	assert.Nil(t, f.Push([]byte("stuck\r")))
	assert.Equal(t, 6, f.Pending())

	lines := f.Push([]byte("\n"))
	assert.Equal(t, []string{"stuck"}, lines)
}

func TestLineFramerReplacesInvalidUTF8(t *testing.T) {
	f := NewLineFramer()

	lines := f.Push([]byte{'o', 'k', 0xff, 0xfe, '!', '\n'})
	if assert.Len(t, lines, 1) {
		assert.Contains(t, lines[0], "ok")
		assert.Contains(t, lines[0], "�")
		assert.Contains(t, lines[0], "!")
	}
}

func TestLineFramerEmptyChunk(t *testing.T) {
	f := NewLineFramer()

	assert.Nil(t, f.Push(nil))
	assert.Nil(t, f.Push([]byte{}))
	assert.Equal(t, 0, f.Pending())
}
