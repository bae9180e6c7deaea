// Package image decodes and validates image payloads shared by the export
// assembler and the upload path.
package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Payload is a decoded image with its sniffed format.
type Payload struct {
	Bytes  []byte
	Format string
}

// Info captures validation metadata for a decoded payload.
type Info struct {
	Format   string
	Width    int
	Height   int
	FileSize int64
}

var signatures = map[string][]byte{
	"jpeg": {0xFF, 0xD8},
	"png":  {0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
	"gif":  {0x47, 0x49, 0x46, 0x38},
	"webp": {0x52, 0x49, 0x46, 0x46},
	"bmp":  {0x42, 0x4D},
}

// SniffFormat identifies the image format from magic bytes. Empty when the
// header matches no known signature.
func SniffFormat(data []byte) string {
	for format, signature := range signatures {
		if len(data) >= len(signature) && bytes.Equal(signature, data[:len(signature)]) {
			return format
		}
	}
	return ""
}

// DecodeInline decodes an inline-encoded image: either a full data URI
// (data:image/png;base64,...) or a bare base64 string.
func DecodeInline(ref string) (Payload, error) {
	encoded := ref
	declared := ""
	if strings.HasPrefix(ref, "data:") {
		comma := strings.Index(ref, ",")
		if comma < 0 {
			return Payload{}, fmt.Errorf("malformed data URI")
		}
		header := ref[len("data:"):comma]
		encoded = ref[comma+1:]
		if !strings.Contains(header, "base64") {
			return Payload{}, fmt.Errorf("unsupported data URI encoding: %s", header)
		}
		if idx := strings.Index(header, "image/"); idx >= 0 {
			declared = header[idx+len("image/"):]
			if semi := strings.Index(declared, ";"); semi >= 0 {
				declared = declared[:semi]
			}
		}
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Payload{}, fmt.Errorf("decode base64: %w", err)
	}
	if len(raw) == 0 {
		return Payload{}, fmt.Errorf("empty image payload")
	}

	format := SniffFormat(raw)
	if format == "" {
		format = normalizeFormat(declared)
	}
	return Payload{Bytes: raw, Format: format}, nil
}

// Validate decodes the image header and enforces an optional size cap.
func Validate(data []byte, maxSize int64) (Info, error) {
	if len(data) == 0 {
		return Info{}, fmt.Errorf("empty image payload")
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return Info{}, fmt.Errorf("image exceeds maximum size of %d bytes", maxSize)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("decode image header: %w", err)
	}

	return Info{
		Format:   normalizeFormat(format),
		Width:    cfg.Width,
		Height:   cfg.Height,
		FileSize: int64(len(data)),
	}, nil
}

// Extension maps a sniffed format to a file extension, defaulting to png.
func Extension(format string) string {
	switch normalizeFormat(format) {
	case "jpeg":
		return "jpg"
	case "gif":
		return "gif"
	case "webp":
		return "webp"
	case "bmp":
		return "bmp"
	default:
		return "png"
	}
}

func normalizeFormat(format string) string {
	format = strings.ToLower(format)
	if format == "jpg" {
		return "jpeg"
	}
	return format
}
