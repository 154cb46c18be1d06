// Package format provides input format detection for the conversion suite.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a detected input format.
type Format int

const (
	// Unknown marks content no detector claimed.
	Unknown Format = iota

	PDF
	PPTX
	DOCX
	XLSX

	// ODT and ODP are detected so the converter can name them in
	// errors, but they are not converted.
	ODT
	ODP

	HTML

	// PNG through WebP are the raster image inputs.
	PNG
	JPEG
	GIF
	BMP
	TIFF
	WebP
)

// String returns the short format name.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case PPTX:
		return "PPTX"
	case DOCX:
		return "DOCX"
	case XLSX:
		return "XLSX"
	case ODT:
		return "ODT"
	case ODP:
		return "ODP"
	case HTML:
		return "HTML"
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case GIF:
		return "GIF"
	case BMP:
		return "BMP"
	case TIFF:
		return "TIFF"
	case WebP:
		return "WebP"
	default:
		return "Unknown"
	}
}

// Extension returns the canonical file extension, dot included.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case PPTX:
		return ".pptx"
	case DOCX:
		return ".docx"
	case XLSX:
		return ".xlsx"
	case ODT:
		return ".odt"
	case ODP:
		return ".odp"
	case HTML:
		return ".html"
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case GIF:
		return ".gif"
	case BMP:
		return ".bmp"
	case TIFF:
		return ".tiff"
	case WebP:
		return ".webp"
	default:
		return ""
	}
}

// IsImage reports whether the format is a raster image type.
func (f Format) IsImage() bool {
	switch f {
	case PNG, JPEG, GIF, BMP, TIFF, WebP:
		return true
	}
	return false
}

// MIME returns the media type for the format, or an octet-stream
// fallback for unrecognized content.
func (f Format) MIME() string {
	switch f {
	case PDF:
		return "application/pdf"
	case PPTX:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case DOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ODT:
		return "application/vnd.oasis.opendocument.text"
	case ODP:
		return "application/vnd.oasis.opendocument.presentation"
	case HTML:
		return "text/html"
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	case GIF:
		return "image/gif"
	case BMP:
		return "image/bmp"
	case TIFF:
		return "image/tiff"
	case WebP:
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// Detect determines file format from the filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".pptx":
		return PPTX
	case ".docx":
		return DOCX
	case ".xlsx":
		return XLSX
	case ".odt":
		return ODT
	case ".odp":
		return ODP
	case ".html", ".htm":
		return HTML
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".gif":
		return GIF
	case ".bmp":
		return BMP
	case ".tif", ".tiff":
		return TIFF
	case ".webp":
		return WebP
	default:
		return Unknown
	}
}

// DetectBytes inspects content to determine format, including looking
// inside ZIP archives to tell the Office formats apart.
func DetectBytes(data []byte) Format {
	f, _ := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	return f
}

// DetectFromReader sniffs content instead of trusting the name: fixed
// magic bytes first, then a look inside ZIP archives to tell the Office
// and OpenDocument package formats apart.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if f := detectMagic(magic); f != Unknown {
		return f, nil
	}

	// ZIP magic: PK\x03\x04 - look inside to tell the formats apart.
	if len(magic) >= 4 && magic[0] == 0x50 && magic[1] == 0x4B && magic[2] == 0x03 && magic[3] == 0x04 {
		return detectZIPFormat(r, size)
	}

	if detectHTMLMagic(magic) {
		return HTML, nil
	}

	return Unknown, nil
}

// detectMagic matches fixed byte signatures.
func detectMagic(data []byte) Format {
	switch {
	case len(data) >= 4 && data[0] == '%' && data[1] == 'P' && data[2] == 'D' && data[3] == 'F':
		return PDF
	case len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}):
		return PNG
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return JPEG
	case len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return GIF
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return WebP
	case len(data) >= 4 && (bytes.Equal(data[:4], []byte("II*\x00")) || bytes.Equal(data[:4], []byte("MM\x00*"))):
		return TIFF
	case len(data) >= 2 && data[0] == 'B' && data[1] == 'M':
		return BMP
	}
	return Unknown
}

// detectHTMLMagic reports whether the bytes open like an HTML document.
func detectHTMLMagic(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return false
	}

	upper := strings.ToUpper(string(data))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML.
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper[:min(500, len(upper))], "<HTML") {
		return true
	}

	return false
}

// detectZIPFormat inspects a ZIP archive to determine which package format
// it holds.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	// OpenDocument archives carry a mimetype entry at the start.
	for _, f := range zr.File {
		if f.Name != "mimetype" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			continue
		}
		data := make([]byte, 256)
		n, _ := rc.Read(data)
		rc.Close()
		mimeType := string(data[:n])
		switch {
		case strings.Contains(mimeType, "application/vnd.oasis.opendocument.presentation"):
			return ODP, nil
		case strings.Contains(mimeType, "application/vnd.oasis.opendocument.text"):
			return ODT, nil
		}
	}

	// Office Open XML markers.
	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX, nil
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		}
	}

	return Unknown, nil
}
