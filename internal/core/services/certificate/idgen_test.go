package certificate

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBytes(prefix ...byte) []byte {
	b := make([]byte, 16)
	copy(b, prefix)
	return b
}

func TestIDGeneratorUsesLeadingHexUppercased(t *testing.T) {
	gen := NewIDGenerator(bytes.NewReader(randomBytes(0xab, 0xcd, 0x12, 0x34)))

	id, err := gen.Next()

	require.NoError(t, err)
	assert.Equal(t, "ABCD1234", id)
}

func TestIDGeneratorFormat(t *testing.T) {
	gen := NewIDGenerator(nil)
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		id, err := gen.Next()
		require.NoError(t, err)
		assert.True(t, IsWellFormedID(id), "unexpected id %q", id)
		seen[id] = struct{}{}
	}
	assert.Greater(t, len(seen), 190)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestIDGeneratorPropagatesReaderFailure(t *testing.T) {
	_, err := NewIDGenerator(failingReader{}).Next()
	assert.Error(t, err)
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "ABCD1234", NormalizeID(" abcd1234 "))
	assert.True(t, IsWellFormedID("ABCD1234"))
	assert.False(t, IsWellFormedID("abcd1234"))
	assert.False(t, IsWellFormedID("ABCD-123"))
	assert.False(t, IsWellFormedID("ABCD12345"))
}
