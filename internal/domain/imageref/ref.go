// Package imageref classifies raw image references into a closed tag set so
// downstream code switches on a kind instead of re-probing string prefixes.
package imageref

import (
	"net/url"
	"strings"
)

type Kind int

const (
	// KindEmpty marks a missing reference. Resolution must fail fast.
	KindEmpty Kind = iota
	// KindInline is a data URI carrying the full image payload.
	KindInline
	// KindRemoteURL is an absolute http(s) URL.
	KindRemoteURL
	// KindStoragePath is a bare object path or filename that needs a
	// public-URL lookup against the object store.
	KindStoragePath
)

func (k Kind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindRemoteURL:
		return "remote_url"
	case KindStoragePath:
		return "storage_path"
	default:
		return "empty"
	}
}

// Reference is a classified image reference.
type Reference struct {
	Kind  Kind
	Value string
}

// Classify inspects the reference shape exactly once at the boundary.
func Classify(source string) Reference {
	trimmed := strings.TrimSpace(source)
	switch {
	case trimmed == "":
		return Reference{Kind: KindEmpty}
	case strings.HasPrefix(trimmed, "data:"):
		return Reference{Kind: KindInline, Value: trimmed}
	case strings.HasPrefix(trimmed, "http://"), strings.HasPrefix(trimmed, "https://"):
		return Reference{Kind: KindRemoteURL, Value: trimmed}
	default:
		return Reference{Kind: KindStoragePath, Value: trimmed}
	}
}

// objectPathMarker identifies public object-store URLs that accept rendition
// transform parameters.
const objectPathMarker = "/storage/v1/object/public/"

// IsStorageObjectURL reports whether a remote URL points at the object store's
// public endpoint and can therefore carry transform query parameters.
func IsStorageObjectURL(rawURL string) bool {
	return strings.Contains(rawURL, objectPathMarker)
}

// Filename extracts the last path segment of a reference, dropping any query
// string. Used to turn bare storage paths into lookup keys.
func Filename(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		ref = u.Path
	}
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		ref = ref[idx+1:]
	}
	return ref
}
