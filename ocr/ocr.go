//go:build ocr

// Package ocr recognizes text in raster images via the Tesseract engine.
//
// This implementation wraps Tesseract through gosseract and is selected
// by the "ocr" build tag, since it needs cgo and an installed Tesseract:
//
//	apt-get install tesseract-ocr   # Debian/Ubuntu
//	brew install tesseract          # macOS
//
// Without the tag the package builds a stub whose operations return
// ErrOCRNotEnabled, so the rest of the suite stays pure Go.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// ErrOCRNotEnabled is returned by the stub build only. It is declared in
// both builds so callers can test against it unconditionally.
var ErrOCRNotEnabled = errors.New("ocr support not enabled; rebuild with -tags ocr")

// Client wraps one Tesseract instance. Not safe for concurrent use; a
// conversion owns its client and closes it when done.
type Client struct {
	client *gosseract.Client
}

// New creates a recognition client. Languages are Tesseract codes such
// as "eng" or "deu"; none means the engine default.
func New(languages ...string) (*Client, error) {
	client := gosseract.NewClient()
	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			client.Close()
			return nil, fmt.Errorf("setting languages %v: %w", languages, err)
		}
	}
	return &Client{client: client}, nil
}

// Close releases the engine. Safe on a nil client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Recognize runs OCR over encoded image bytes (PNG, JPEG, TIFF) and
// returns the recognized text, trimmed. Recognition itself cannot be
// interrupted; when the context ends first the call returns early and
// the client must be closed rather than reused, because the abandoned
// engine call still holds it.
func (c *Client) Recognize(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", errors.New("empty image")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		if err := c.client.SetImageFromBytes(image); err != nil {
			done <- result{err: fmt.Errorf("setting image: %w", err)}
			return
		}
		text, err := c.client.Text()
		if err != nil {
			done <- result{err: fmt.Errorf("recognizing text: %w", err)}
			return
		}
		done <- result{text: strings.TrimSpace(text)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.text, r.err
	}
}
