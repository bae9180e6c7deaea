// Package export assembles a brand kit's data and generated assets into a
// single downloadable ZIP archive.
package export

// AssetKind tags a generated asset as a logo concept or a marketing image.
type AssetKind string

const (
	AssetLogo  AssetKind = "logo"
	AssetImage AssetKind = "image"
)

// Asset is one generated asset in the order it is stored on the brand kit.
type Asset struct {
	ID   string
	Kind AssetKind
	// Data is the inline-encoded payload (data URI or bare base64); may be
	// empty when only a URL is available.
	Data string
	// URL is a remote location for the asset; unused during packaging except
	// for the uploaded logo reference.
	URL string
}

// Palette is the five-slot brand color palette, all hex strings.
type Palette struct {
	Primary    string
	Secondary  string
	Accent     string
	Background string
	Text       string
}

// Typography is the configured font pair.
type Typography struct {
	HeadingFont string
	BodyFont    string
}

// Model is the subset of brand kit data needed to produce an archive.
type Model struct {
	Name        string
	Description string
	Palette     Palette
	Typography  Typography
	Assets      []Asset
	// SelectedLogoID designates the asset chosen as the kit's logo, if any.
	SelectedLogoID string
	// UploadedLogoRef is an externally uploaded logo: a remote URL or an
	// inline payload.
	UploadedLogoRef string
}

// Options is the inclusion policy for the optional archive folders.
type Options struct {
	IncludeLogos   bool
	IncludeGallery bool
}

// DefaultOptions includes both logo and gallery folders.
func DefaultOptions() Options {
	return Options{IncludeLogos: true, IncludeGallery: true}
}

// SkipRecord reports one asset that could not be packaged. The archive is
// still produced; callers decide whether to surface a warning.
type SkipRecord struct {
	AssetID string
	Reason  string
}

// Result carries the finished archive and any per-asset skips.
type Result struct {
	Archive []byte
	Skipped []SkipRecord
}
