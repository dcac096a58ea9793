package content

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_RoundTrip(t *testing.T) {
	original := Cursor{
		CreatedAt: time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC),
		ID:        "b5e7a1f0-0000-0000-0000-000000000001",
	}

	decoded, err := DecodeCursor(EncodeCursor(original))
	require.NoError(t, err)

	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, original.ID, decoded.ID)
}

func TestDecodeCursor_RejectsGarbage(t *testing.T) {
	cases := []string{
		"not base64 at all!!!",
		base64.StdEncoding.EncodeToString([]byte("not json")),
		base64.StdEncoding.EncodeToString([]byte(`{"createdAt":"2025-06-15T12:30:00Z"}`)), // missing id
		base64.StdEncoding.EncodeToString([]byte(`{"id":"abc"}`)),                          // missing createdAt
		"",
	}

	for _, encoded := range cases {
		_, err := DecodeCursor(encoded)
		assert.ErrorIs(t, err, ErrInvalidCursor, "input: %q", encoded)
	}
}

func TestEncodeCursor_IsOpaqueBase64(t *testing.T) {
	encoded := EncodeCursor(Cursor{CreatedAt: time.Now().UTC(), ID: "x"})

	_, err := base64.StdEncoding.DecodeString(encoded)
	assert.NoError(t, err)
}
