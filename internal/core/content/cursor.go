package content

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Cursor is the keyset pagination position: the (createdAt, id) pair of
// the last item on the previous page.
type Cursor struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
}

// EncodeCursor serializes a cursor as base64-encoded JSON.
func EncodeCursor(c Cursor) string {
	data, _ := json.Marshal(c)
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeCursor parses a cursor produced by EncodeCursor. Any malformed
// input yields ErrInvalidCursor.
func DecodeCursor(encoded string) (Cursor, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if c.ID == "" || c.CreatedAt.IsZero() {
		return Cursor{}, fmt.Errorf("%w: missing fields", ErrInvalidCursor)
	}
	return c, nil
}
