package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

type PDF struct{}

func (PDF) Extract(_ context.Context, data []byte) (text string, err error) {
	// the parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf parser: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return buf.String(), nil
}
