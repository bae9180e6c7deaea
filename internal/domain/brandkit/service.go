package brandkit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"brandkit-server-go/internal/domain/export"
	"brandkit-server-go/internal/platform/errors"
	"brandkit-server-go/internal/platform/logging"
)

// Service drives the brand kit creation flow on top of a Repository.
type Service struct {
	repo   Repository
	logger *logging.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.DefaultLogger
	}
	return &Service{repo: repo, logger: logger}
}

// CreateDraft starts a new brand kit for a user.
func (s *Service) CreateDraft(ctx context.Context, ownerID uint, name, description, industry string) (*BrandKit, error) {
	if name == "" {
		return nil, errors.New(errors.KindDomain, "brandkit.create", "brand name is required")
	}

	kit := &BrandKit{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Industry:    industry,
		Step:        StepDraft,
	}
	if err := s.repo.Create(ctx, kit); err != nil {
		return nil, err
	}
	s.logger.InfoTag("BRANDKIT", "created draft kit %d for user %d", kit.ID, ownerID)
	return kit, nil
}

// Get loads a kit and enforces ownership.
func (s *Service) Get(ctx context.Context, ownerID, kitID uint) (*BrandKit, error) {
	kit, err := s.repo.FindByID(ctx, kitID)
	if err != nil {
		return nil, err
	}
	if kit == nil || kit.OwnerID != ownerID {
		return nil, errors.New(errors.KindDomain, "brandkit.get", "brand kit not found")
	}
	return kit, nil
}

// List returns all kits owned by a user.
func (s *Service) List(ctx context.Context, ownerID uint) ([]*BrandKit, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Delete removes a kit after an ownership check.
func (s *Service) Delete(ctx context.Context, ownerID, kitID uint) error {
	kit, err := s.Get(ctx, ownerID, kitID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, kit.ID)
}

// SetPalette stores a validated palette and moves the wizard forward when the
// kit was waiting on it.
func (s *Service) SetPalette(ctx context.Context, ownerID, kitID uint, palette Palette) (*BrandKit, error) {
	kit, err := s.Get(ctx, ownerID, kitID)
	if err != nil {
		return nil, err
	}
	if !palette.Validate() {
		return nil, errors.New(errors.KindDomain, "brandkit.palette", "palette must contain five hex colors")
	}

	kit.Palette = palette
	if kit.Step == StepPalette {
		kit.Step = kit.Step.Next()
	}
	if err := s.repo.Update(ctx, kit); err != nil {
		return nil, err
	}
	return kit, nil
}

// SetTypography stores the font pair and advances past the typography step.
func (s *Service) SetTypography(ctx context.Context, ownerID, kitID uint, typography Typography) (*BrandKit, error) {
	kit, err := s.Get(ctx, ownerID, kitID)
	if err != nil {
		return nil, err
	}
	if !typography.Complete() {
		return nil, errors.New(errors.KindDomain, "brandkit.typography", "both font families are required")
	}

	kit.Typography = typography
	if kit.Step == StepTypography {
		kit.Step = kit.Step.Next()
	}
	if err := s.repo.Update(ctx, kit); err != nil {
		return nil, err
	}
	return kit, nil
}

// Advance moves the wizard to the next step, checking that the current step's
// data is in place before letting go of it.
func (s *Service) Advance(ctx context.Context, ownerID, kitID uint) (*BrandKit, error) {
	kit, err := s.Get(ctx, ownerID, kitID)
	if err != nil {
		return nil, err
	}

	switch kit.Step {
	case StepIdentity:
		if kit.Name == "" {
			return nil, errors.New(errors.KindDomain, "brandkit.advance", "identity step needs a name")
		}
	case StepPalette:
		if !kit.Palette.Validate() {
			return nil, errors.New(errors.KindDomain, "brandkit.advance", "palette step incomplete")
		}
	case StepTypography:
		if !kit.Typography.Complete() {
			return nil, errors.New(errors.KindDomain, "brandkit.advance", "typography step incomplete")
		}
	case StepComplete:
		return kit, nil
	}

	kit.Step = kit.Step.Next()
	if err := s.repo.Update(ctx, kit); err != nil {
		return nil, err
	}
	return kit, nil
}

// AttachAssets appends generated assets in stored order.
func (s *Service) AttachAssets(ctx context.Context, ownerID, kitID uint, assets []Asset) (*BrandKit, error) {
	kit, err := s.Get(ctx, ownerID, kitID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, asset := range assets {
		if asset.ID == "" {
			asset.ID = uuid.NewString()
		}
		asset.Position = kit.NextPosition()
		asset.CreatedAt = now
		kit.Assets = append(kit.Assets, asset)
	}
	if err := s.repo.Update(ctx, kit); err != nil {
		return nil, err
	}
	return kit, nil
}

// SelectLogo designates one attached logo asset as the kit's logo.
func (s *Service) SelectLogo(ctx context.Context, ownerID, kitID uint, assetID string) (*BrandKit, error) {
	kit, err := s.Get(ctx, ownerID, kitID)
	if err != nil {
		return nil, err
	}

	asset := kit.AssetByID(assetID)
	if asset == nil || asset.Kind != AssetLogo {
		return nil, errors.New(errors.KindDomain, "brandkit.select_logo", "no such logo asset")
	}

	kit.SelectedLogoID = assetID
	if err := s.repo.Update(ctx, kit); err != nil {
		return nil, err
	}
	return kit, nil
}

// SetUploadedLogo records an externally uploaded logo reference.
func (s *Service) SetUploadedLogo(ctx context.Context, ownerID, kitID uint, ref string) (*BrandKit, error) {
	kit, err := s.Get(ctx, ownerID, kitID)
	if err != nil {
		return nil, err
	}
	kit.UploadedLogoRef = ref
	if err := s.repo.Update(ctx, kit); err != nil {
		return nil, err
	}
	return kit, nil
}

// ExportModel converts a kit into the shape the archive assembler consumes,
// preserving stored asset order.
func ExportModel(kit *BrandKit) export.Model {
	m := export.Model{
		Name:        kit.Name,
		Description: kit.Description,
		Palette: export.Palette{
			Primary:    kit.Palette.Primary,
			Secondary:  kit.Palette.Secondary,
			Accent:     kit.Palette.Accent,
			Background: kit.Palette.Background,
			Text:       kit.Palette.Text,
		},
		Typography: export.Typography{
			HeadingFont: kit.Typography.HeadingFont,
			BodyFont:    kit.Typography.BodyFont,
		},
		SelectedLogoID:  kit.SelectedLogoID,
		UploadedLogoRef: kit.UploadedLogoRef,
	}
	for _, asset := range kit.Assets {
		m.Assets = append(m.Assets, export.Asset{
			ID:   asset.ID,
			Kind: export.AssetKind(asset.Kind),
			Data: asset.Data,
			URL:  asset.URL,
		})
	}
	return m
}
