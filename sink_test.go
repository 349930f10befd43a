package elsa

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedSinkTruncatesButCountsFully(t *testing.T) {
	buf := make([]byte, 4)
	s := NewFixedSink(buf)
	n, err := s.Write([]byte("hello world"))
	assert.NoError(t, err)
	assert.Equal(t, len("hello world"), n)
	assert.Equal(t, len("hello world"), s.Written())
	assert.Equal(t, "hell", string(s.Stored()))
}

func TestFixedSinkAcrossMultipleWrites(t *testing.T) {
	buf := make([]byte, 5)
	s := NewFixedSink(buf)
	s.Write([]byte("ab"))
	s.Write([]byte("cde"))
	s.Write([]byte("fgh"))
	assert.Equal(t, 8, s.Written())
	assert.Equal(t, "abcde", string(s.Stored()))
}

func TestBufferSinkGrowsAndResets(t *testing.T) {
	s := NewBufferSink()
	s.Write([]byte("foo"))
	s.Write([]byte("bar"))
	assert.Equal(t, "foobar", s.String())
	assert.Equal(t, 6, s.Written())

	s.Reset()
	assert.Equal(t, "", s.String())
	assert.Equal(t, 0, s.Written())
}

func TestWriterSinkWrapsIoWriter(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)
	s.Write([]byte("hi"))
	assert.Equal(t, "hi", buf.String())
	assert.Equal(t, 2, s.Written())
	assert.NoError(t, s.Err())
}

func TestFuncSinkInvokesCallback(t *testing.T) {
	var got []byte
	s := NewFuncSink(func(p []byte) { got = append(got, p...) })
	s.Write([]byte("chunk1"))
	s.Write([]byte("chunk2"))
	assert.Equal(t, "chunk1chunk2", string(got))
	assert.Equal(t, len("chunk1chunk2"), s.Written())
}
