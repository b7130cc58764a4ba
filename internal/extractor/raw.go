package extractor

import (
	"context"
	"strings"
)

// RawText reads bytes as text. Binary content survives as whatever valid
// UTF-8 it contains; invalid sequences and NUL bytes are dropped so the
// result can be stored in a text column.
type RawText struct{}

func (RawText) Extract(_ context.Context, data []byte) (string, error) {
	s := strings.ToValidUTF8(string(data), "")
	return strings.ReplaceAll(s, "\x00", ""), nil
}
