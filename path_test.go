package elsa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathBuilderPushAndTruncate(t *testing.T) {
	var b pathBuilder
	mark := b.pushKey([]byte("a"))
	assert.Equal(t, ".a", string(b.bytes()))

	b.pushIndex(3)
	assert.Equal(t, ".a[3]", string(b.bytes()))

	b.truncate(mark)
	assert.Equal(t, "", string(b.bytes()))
}

func TestPathBuilderTruncatesAtMaxLen(t *testing.T) {
	var b pathBuilder
	b.pushKey([]byte(strings.Repeat("x", MaxPathLen)))
	assert.Len(t, b.bytes(), MaxPathLen)
}

func TestSplitPathKeysAndIndexes(t *testing.T) {
	segs := splitPath(".a.bb[2][]")
	assert.Equal(t, []segment{
		{key: "a"},
		{key: "bb"},
		{index: 2, isIndex: true},
		{isIndex: true, isPush: true},
	}, segs)
}

func TestSplitPathEmpty(t *testing.T) {
	assert.Empty(t, splitPath(""))
}
