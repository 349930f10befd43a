package elsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeStringControlBytes(t *testing.T) {
	out := EscapeString([]byte("a\nb\tc\"d\\e\x01"))
	assert.Equal(t, "a\\nb\\tc\\\"d\\\\e\\u0001", string(out))
}

func TestEscapeStringPassesUTF8Through(t *testing.T) {
	out := EscapeString([]byte("héllo 日本語"))
	assert.Equal(t, "héllo 日本語", string(out))
}

func TestQuoteString(t *testing.T) {
	assert.Equal(t, `"hi\n"`, string(QuoteString([]byte("hi\n"))))
}

func TestUnescapeStringBasic(t *testing.T) {
	out, n := UnescapeString([]byte(`a\nb\tc\"d\\e`))
	assert.Equal(t, "a\nb\tc\"d\\e", string(out))
	assert.Equal(t, len(out), n)
}

func TestUnescapeStringUnicodeEscape(t *testing.T) {
	out, n := UnescapeString([]byte("\\u00e9"))
	assert.Equal(t, "é", string(out))
	assert.Equal(t, len(out), n)
}

func TestUnescapeStringLoneSurrogateIsInvalid(t *testing.T) {
	_, code := UnescapeString([]byte(`\ud800`))
	assert.Equal(t, Invalid_, code)
}

func TestUnescapeStringTruncatedEscapeIsIncomplete(t *testing.T) {
	_, code := UnescapeString([]byte(`\u00`))
	assert.Equal(t, Incomplete_, code)

	_, code = UnescapeString([]byte(`\`))
	assert.Equal(t, Incomplete_, code)
}

func TestUnescapeStringBadEscapeIsInvalid(t *testing.T) {
	_, code := UnescapeString([]byte(`\q`))
	assert.Equal(t, Invalid_, code)
}

func TestBase64RoundTrip(t *testing.T) {
	enc := Base64Encode([]byte("hello"))
	assert.Equal(t, "aGVsbG8=", string(enc))
	dec, err := Base64Decode(enc)
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(dec))
}

func TestHexRoundTrip(t *testing.T) {
	enc := HexEncode([]byte("ab"))
	assert.Equal(t, "6162", string(enc))
	dec, err := HexDecode(enc)
	assert.NoError(t, err)
	assert.Equal(t, "ab", string(dec))
}

func TestNormalizedKey(t *testing.T) {
	assert.True(t, normalizedKey([]byte("plain_key")))
}
