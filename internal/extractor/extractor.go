// Package extractor turns submitted CV documents into plain text.
//
// File inputs are dispatched on their declared extension to a registered
// Strategy. Extensions without a strategy go to the fallback, which by
// default reads the raw bytes as text and never fails.
package extractor

import (
	"context"
	"fmt"
	"strings"
)

type InputKind int

const (
	KindText InputKind = iota
	KindFile
)

type Input struct {
	Kind      InputKind
	Content   string // KindText
	Data      []byte // KindFile
	Extension string // KindFile, declared by the client
}

func TextInput(content string) Input {
	return Input{Kind: KindText, Content: content}
}

func FileInput(data []byte, extension string) Input {
	return Input{Kind: KindFile, Data: data, Extension: extension}
}

// Strategy extracts text from one document format.
type Strategy interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

type StrategyFunc func(ctx context.Context, data []byte) (string, error)

func (f StrategyFunc) Extract(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}

// Error is returned when a registered strategy fails.
type Error struct {
	Extension string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Extension, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type Extractor struct {
	strategies map[string]Strategy
	fallback   Strategy
}

type Option func(*Extractor)

// WithStrategy registers s for ext (case-insensitive, leading dot optional).
func WithStrategy(ext string, s Strategy) Option {
	return func(e *Extractor) {
		if s == nil {
			delete(e.strategies, NormalizeExtension(ext))
			return
		}
		e.strategies[NormalizeExtension(ext)] = s
	}
}

func WithFallback(s Strategy) Option {
	return func(e *Extractor) {
		if s != nil {
			e.fallback = s
		}
	}
}

func New(opts ...Option) *Extractor {
	e := &Extractor{
		strategies: map[string]Strategy{},
		fallback:   RawText{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewDefault registers the PDF and DOCX strategies. Legacy .doc files have no
// dedicated reader and go to the fallback.
func NewDefault(opts ...Option) *Extractor {
	base := []Option{
		WithStrategy("pdf", PDF{}),
		WithStrategy("docx", DOCX{}),
	}
	return New(append(base, opts...)...)
}

func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// Supports reports whether ext has a dedicated strategy.
func (e *Extractor) Supports(ext string) bool {
	_, ok := e.strategies[NormalizeExtension(ext)]
	return ok
}

func (e *Extractor) Extract(ctx context.Context, in Input) (string, error) {
	if in.Kind == KindText {
		return in.Content, nil
	}

	ext := NormalizeExtension(in.Extension)
	s, ok := e.strategies[ext]
	if !ok {
		s = e.fallback
	}
	text, err := s.Extract(ctx, in.Data)
	if err != nil {
		return "", &Error{Extension: ext, Err: err}
	}
	return text, nil
}
