// Package brandkit holds the brand kit aggregate and the multi-step creation
// flow that builds one up from a draft to a completed identity.
package brandkit

import (
	"regexp"
	"time"
)

// WizardStep is the creation-flow stage a brand kit is in.
type WizardStep string

const (
	StepDraft      WizardStep = "draft"
	StepIdentity   WizardStep = "identity"
	StepPalette    WizardStep = "palette"
	StepTypography WizardStep = "typography"
	StepGeneration WizardStep = "generation"
	StepComplete   WizardStep = "complete"
)

// stepOrder defines the only legal progression through the wizard.
var stepOrder = []WizardStep{
	StepDraft,
	StepIdentity,
	StepPalette,
	StepTypography,
	StepGeneration,
	StepComplete,
}

// Next returns the step after s, or s itself when already complete.
func (s WizardStep) Next() WizardStep {
	for i, step := range stepOrder {
		if step == s && i+1 < len(stepOrder) {
			return stepOrder[i+1]
		}
	}
	return s
}

// Valid reports whether s is a known wizard step.
func (s WizardStep) Valid() bool {
	for _, step := range stepOrder {
		if step == s {
			return true
		}
	}
	return false
}

// AssetKind tags a generated asset.
type AssetKind string

const (
	AssetLogo  AssetKind = "logo"
	AssetImage AssetKind = "image"
)

// Asset is one generated image attached to a brand kit, kept in stored order
// via Position.
type Asset struct {
	ID        string
	Kind      AssetKind
	Data      string
	URL       string
	Prompt    string
	Position  int
	CreatedAt time.Time
}

// Palette is the five-slot color palette, hex strings.
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks that every slot carries a six-digit hex color.
func (p Palette) Validate() bool {
	for _, hex := range []string{p.Primary, p.Secondary, p.Accent, p.Background, p.Text} {
		if !hexPattern.MatchString(hex) {
			return false
		}
	}
	return true
}

// Typography is the configured font pair.
type Typography struct {
	HeadingFont string `json:"headingFont"`
	BodyFont    string `json:"bodyFont"`
}

// Complete reports whether both families are configured.
func (t Typography) Complete() bool {
	return t.HeadingFont != "" && t.BodyFont != ""
}

// BrandKit is the aggregate root: identity, palette, typography, and the
// generated assets, owned by one user.
type BrandKit struct {
	ID              uint
	OwnerID         uint
	Name            string
	Description     string
	Industry        string
	Step            WizardStep
	Palette         Palette
	Typography      Typography
	Assets          []Asset
	SelectedLogoID  string
	UploadedLogoRef string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AssetByID finds an attached asset, or nil.
func (k *BrandKit) AssetByID(id string) *Asset {
	for i := range k.Assets {
		if k.Assets[i].ID == id {
			return &k.Assets[i]
		}
	}
	return nil
}

// NextPosition returns the stored-order index for a newly attached asset.
func (k *BrandKit) NextPosition() int {
	max := -1
	for _, asset := range k.Assets {
		if asset.Position > max {
			max = asset.Position
		}
	}
	return max + 1
}
