package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(entryDate, createdAt)
	require.NotEmpty(t, token)

	decodedDate, decodedCreatedAt, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, entryDate.Equal(decodedDate))
	assert.True(t, createdAt.Equal(decodedCreatedAt))
}

func TestEncodeDecodeToken_ZeroTimes(t *testing.T) {
	token := EncodeToken(time.Time{}, time.Time{})

	decodedDate, decodedCreatedAt, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, decodedDate.IsZero())
	assert.True(t, decodedCreatedAt.IsZero())
}

func TestDecodeToken_Errors(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	// Valid base64, but a single field with no separator.
	_, _, err = DecodeToken("MjAyNi0wNS0xNVQwMDowMDowMFo=")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	// "notadate|2026-05-15T14:30:45.123456789Z"
	_, _, err = DecodeToken("bm90YWRhdGV8MjAyNi0wNS0xNVQxNDozMDo0NS4xMjM0NTY3ODla")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry date parse")
}
