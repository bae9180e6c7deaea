package brandkit

import (
	"context"
	"sync"
	"testing"

	platformerrors "brandkit-server-go/internal/platform/errors"
)

type fakeRepo struct {
	mu     sync.Mutex
	nextID uint
	kits   map[uint]*BrandKit
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{kits: make(map[uint]*BrandKit)}
}

func (r *fakeRepo) Create(_ context.Context, kit *BrandKit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	kit.ID = r.nextID
	clone := *kit
	r.kits[kit.ID] = &clone
	return nil
}

func (r *fakeRepo) Update(_ context.Context, kit *BrandKit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *kit
	r.kits[kit.ID] = &clone
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uint) (*BrandKit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kit, ok := r.kits[id]
	if !ok {
		return nil, nil
	}
	clone := *kit
	return &clone, nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID uint) ([]*BrandKit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*BrandKit
	for _, kit := range r.kits {
		if kit.OwnerID == ownerID {
			clone := *kit
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.kits, id)
	return nil
}

func validPalette() Palette {
	return Palette{
		Primary: "#112233", Secondary: "#445566", Accent: "#778899",
		Background: "#ffffff", Text: "#000000",
	}
}

func TestCreateDraftRequiresName(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	if _, err := svc.CreateDraft(context.Background(), 1, "", "", ""); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestWizardProgression(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	ctx := context.Background()

	kit, err := svc.CreateDraft(ctx, 1, "Acme", "A test brand", "tech")
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if kit.Step != StepDraft {
		t.Fatalf("new kit should start at draft, got %s", kit.Step)
	}

	// draft -> identity -> palette
	for _, want := range []WizardStep{StepIdentity, StepPalette} {
		kit, err = svc.Advance(ctx, 1, kit.ID)
		if err != nil {
			t.Fatalf("Advance to %s: %v", want, err)
		}
		if kit.Step != want {
			t.Fatalf("expected step %s, got %s", want, kit.Step)
		}
	}

	// Palette step blocks until a valid palette is set.
	if _, err := svc.Advance(ctx, 1, kit.ID); err == nil {
		t.Fatal("expected palette-incomplete error")
	}
	kit, err = svc.SetPalette(ctx, 1, kit.ID, validPalette())
	if err != nil {
		t.Fatalf("SetPalette: %v", err)
	}
	if kit.Step != StepTypography {
		t.Fatalf("SetPalette should advance to typography, got %s", kit.Step)
	}

	kit, err = svc.SetTypography(ctx, 1, kit.ID, Typography{HeadingFont: "Lora", BodyFont: "Inter"})
	if err != nil {
		t.Fatalf("SetTypography: %v", err)
	}
	if kit.Step != StepGeneration {
		t.Fatalf("SetTypography should advance to generation, got %s", kit.Step)
	}

	kit, err = svc.Advance(ctx, 1, kit.ID)
	if err != nil {
		t.Fatalf("final Advance: %v", err)
	}
	if kit.Step != StepComplete {
		t.Fatalf("expected complete, got %s", kit.Step)
	}

	// Advancing a complete kit is a no-op.
	kit, err = svc.Advance(ctx, 1, kit.ID)
	if err != nil {
		t.Fatalf("Advance on complete kit: %v", err)
	}
	if kit.Step != StepComplete {
		t.Fatalf("complete kit must stay complete, got %s", kit.Step)
	}
}

func TestSetPaletteRejectsBadHex(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	ctx := context.Background()
	kit, _ := svc.CreateDraft(ctx, 1, "Acme", "", "")

	bad := validPalette()
	bad.Accent = "not-a-color"
	if _, err := svc.SetPalette(ctx, 1, kit.ID, bad); err == nil {
		t.Fatal("expected invalid palette error")
	}
	if _, err := svc.SetPalette(ctx, 1, kit.ID, Palette{}); err == nil {
		t.Fatal("expected empty palette error")
	}
}

func TestOwnershipEnforced(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	ctx := context.Background()
	kit, _ := svc.CreateDraft(ctx, 1, "Acme", "", "")

	if _, err := svc.Get(ctx, 2, kit.ID); err == nil {
		t.Fatal("expected not-found for foreign owner")
	} else if !platformerrors.IsKind(err, platformerrors.KindDomain) {
		t.Errorf("expected domain error, got %v", err)
	}
	if err := svc.Delete(ctx, 2, kit.ID); err == nil {
		t.Fatal("expected delete to fail for foreign owner")
	}
}

func TestAttachAssetsKeepsStoredOrder(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	ctx := context.Background()
	kit, _ := svc.CreateDraft(ctx, 1, "Acme", "", "")

	kit, err := svc.AttachAssets(ctx, 1, kit.ID, []Asset{
		{Kind: AssetLogo, Data: "a"},
		{Kind: AssetLogo, Data: "b"},
		{Kind: AssetImage, Data: "c"},
	})
	if err != nil {
		t.Fatalf("AttachAssets: %v", err)
	}

	if len(kit.Assets) != 3 {
		t.Fatalf("expected 3 assets, got %d", len(kit.Assets))
	}
	for i, asset := range kit.Assets {
		if asset.Position != i {
			t.Errorf("asset %d has position %d", i, asset.Position)
		}
		if asset.ID == "" {
			t.Errorf("asset %d missing generated id", i)
		}
	}
}

func TestSelectLogoValidatesKind(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	ctx := context.Background()
	kit, _ := svc.CreateDraft(ctx, 1, "Acme", "", "")
	kit, _ = svc.AttachAssets(ctx, 1, kit.ID, []Asset{
		{ID: "logo-1", Kind: AssetLogo, Data: "a"},
		{ID: "img-1", Kind: AssetImage, Data: "b"},
	})

	if _, err := svc.SelectLogo(ctx, 1, kit.ID, "img-1"); err == nil {
		t.Fatal("selecting an image asset as logo must fail")
	}
	kit, err := svc.SelectLogo(ctx, 1, kit.ID, "logo-1")
	if err != nil {
		t.Fatalf("SelectLogo: %v", err)
	}
	if kit.SelectedLogoID != "logo-1" {
		t.Errorf("expected selected logo-1, got %q", kit.SelectedLogoID)
	}
}

func TestExportModelPreservesOrderAndFields(t *testing.T) {
	kit := &BrandKit{
		Name:        "Acme",
		Description: "desc",
		Palette:     validPalette(),
		Typography:  Typography{HeadingFont: "Lora", BodyFont: "Inter"},
		Assets: []Asset{
			{ID: "a", Kind: AssetLogo, Data: "d1", Position: 0},
			{ID: "b", Kind: AssetImage, Data: "d2", Position: 1},
		},
		SelectedLogoID:  "a",
		UploadedLogoRef: "https://cdn.example.com/up.png",
	}

	m := ExportModel(kit)

	if m.Name != "Acme" || m.SelectedLogoID != "a" || m.UploadedLogoRef != kit.UploadedLogoRef {
		t.Errorf("identity fields not carried over: %+v", m)
	}
	if m.Palette.Primary != "#112233" {
		t.Errorf("palette not carried over: %+v", m.Palette)
	}
	if len(m.Assets) != 2 || m.Assets[0].ID != "a" || m.Assets[1].ID != "b" {
		t.Errorf("asset order not preserved: %+v", m.Assets)
	}
	if string(m.Assets[0].Kind) != string(AssetLogo) {
		t.Errorf("asset kind not mapped: %+v", m.Assets[0])
	}
}
