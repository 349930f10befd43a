package elsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setf(t *testing.T, src, path, format string, args ...interface{}) (string, bool) {
	t.Helper()
	sink := NewBufferSink()
	replaced, err := Setf([]byte(src), sink, path, format, args...)
	require.NoError(t, err)
	return sink.String(), replaced
}

func TestSetfReplaceExisting(t *testing.T) {
	out, replaced := setf(t, `{"a":1,"b":2}`, ".a", "%d", 100)
	assert.True(t, replaced)
	assert.Equal(t, `{"a":100,"b":2}`, out)
}

func TestSetfInsertMissingKey(t *testing.T) {
	out, replaced := setf(t, `{"a":1}`, ".b", "%d", 2)
	assert.False(t, replaced)
	assert.Equal(t, `{"a":1,"b":2}`, out)
}

func TestSetfInsertCreatesIntermediateObjects(t *testing.T) {
	out, replaced := setf(t, `{}`, ".d.e", "%d", 7)
	assert.False(t, replaced)
	assert.Equal(t, `{"d":{"e":7}}`, out)
}

func TestSetfArrayPushExisting(t *testing.T) {
	out, _ := setf(t, `{"a":[1,2]}`, ".a[]", "%d", 3)
	assert.Equal(t, `{"a":[1,2,3]}`, out)
}

func TestSetfArrayPushIntoEmpty(t *testing.T) {
	out, _ := setf(t, `{"a":[]}`, ".a[]", "%d", 1)
	assert.Equal(t, `{"a":[1]}`, out)
}

func TestSetfArrayPushCreatesArray(t *testing.T) {
	out, _ := setf(t, `{"a":1}`, ".b[]", "%d", 1)
	assert.Equal(t, `{"a":1,"b":[1]}`, out)
}

func TestSetfDeleteExisting(t *testing.T) {
	out, deleted := setf(t, `{"a":1,"b":2}`, ".a", "")
	assert.True(t, deleted)
	assert.Equal(t, `{"b":2}`, out)
}

func TestSetfDeleteLastMember(t *testing.T) {
	out, deleted := setf(t, `{"a":1,"b":2}`, ".b", "")
	assert.True(t, deleted)
	assert.Equal(t, `{"a":1}`, out)
}

func TestSetfDeleteOnlyMember(t *testing.T) {
	out, deleted := setf(t, `{"a":1}`, ".a", "")
	assert.True(t, deleted)
	assert.Equal(t, `{}`, out)
}

func TestSetfDeleteMissingKeyIsNoop(t *testing.T) {
	out, deleted := setf(t, `{"a":1}`, ".z", "")
	assert.False(t, deleted)
	assert.Equal(t, `{"a":1}`, out)
}

func TestSetfDeleteArrayElement(t *testing.T) {
	out, deleted := setf(t, `{"a":[1,2,3]}`, ".a[1]", "")
	assert.True(t, deleted)
	assert.Equal(t, `{"a":[1,3]}`, out)
}

// TestSetfArrayPushPreservesTrailingWhitespace covers a splice point with
// whitespace before the closing bracket: the new element must land right
// after the last real content, with the source's own spacing kept before
// the bracket rather than swallowed ahead of the inserted comma.
func TestSetfArrayPushPreservesTrailingWhitespace(t *testing.T) {
	out, _ := setf(t, `{ "a": 123, "b": [ 1 ], "c": true }`, ".b[]", "%d", 2)
	assert.Equal(t, `{ "a": 123, "b": [ 1,2 ], "c": true }`, out)
}

// TestSetfInsertCreatesIntermediateObjectsPreservesTrailingWhitespace is the
// same case for insertKey: inserting a new nested key must not relocate
// whitespace that precedes the containing object's closing brace.
func TestSetfInsertCreatesIntermediateObjectsPreservesTrailingWhitespace(t *testing.T) {
	out, replaced := setf(t, `{ "a": 123, "b": [ 1 ], "c": true }`, ".d.e", "%d", 8)
	assert.False(t, replaced)
	assert.Equal(t, `{ "a": 123, "b": [ 1 ], "c": true,"d":{"e":8} }`, out)
}

func TestSetfEmptyPathReplacesDocument(t *testing.T) {
	out, replaced := setf(t, `{"a":1}`, "", `{"z":9}`)
	assert.True(t, replaced)
	assert.Equal(t, `{"z":9}`, out)
}
