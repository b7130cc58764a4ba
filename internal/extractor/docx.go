package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

// DOCX collects the text of every paragraph in the document body, one
// non-empty paragraph per line.
type DOCX struct{}

func (DOCX) Extract(_ context.Context, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == docxBody {
			body = f
			break
		}
	}
	if body == nil {
		return "", errors.New("docx: " + docxBody + " not found")
	}

	rc, err := body.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	return paragraphText(rc)
}

func paragraphText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		paras  []string
		cur    strings.Builder
		inText bool
		inRun  int
	)
	flush := func() {
		if strings.TrimSpace(cur.String()) != "" {
			paras = append(paras, cur.String())
		}
		cur.Reset()
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("docx xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "r":
				inRun++
			case "t":
				inText = true
			case "tab":
				if inRun > 0 {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if inRun > 0 {
					cur.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "r":
				if inRun > 0 {
					inRun--
				}
			case "t":
				inText = false
			case "p":
				flush()
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
	flush()

	return strings.Join(paras, "\n"), nil
}
