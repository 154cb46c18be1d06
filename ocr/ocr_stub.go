//go:build !ocr

// Package ocr recognizes text in raster images via the Tesseract engine.
//
// This is the stub built when the "ocr" tag is not set: every operation
// reports ErrOCRNotEnabled, keeping the suite pure Go on hosts without
// Tesseract. Rebuild with
//
//	go build -tags ocr
//
// and an installed Tesseract to enable real recognition.
package ocr

import (
	"context"
	"errors"
)

// ErrOCRNotEnabled is returned when recognition is requested but OCR
// support was not compiled in.
var ErrOCRNotEnabled = errors.New("ocr support not enabled; rebuild with -tags ocr")

// Client is the stub recognition client.
type Client struct{}

// New reports that OCR support is not compiled in.
func New(languages ...string) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op, safe on a nil client.
func (c *Client) Close() error {
	return nil
}

// Recognize reports that OCR support is not compiled in.
func (c *Client) Recognize(ctx context.Context, image []byte) (string, error) {
	return "", ErrOCRNotEnabled
}
