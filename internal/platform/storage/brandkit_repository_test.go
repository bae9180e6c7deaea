package storage

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"brandkit-server-go/internal/domain/brandkit"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &BrandKitRecord{}, &AssetRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testKit() *brandkit.BrandKit {
	now := time.Now().Truncate(time.Second)
	return &brandkit.BrandKit{
		OwnerID:     1,
		Name:        "Northwind",
		Description: "A coffee roastery",
		Industry:    "coffee",
		Step:        brandkit.StepPalette,
		Palette: brandkit.Palette{
			Primary:    "#112233",
			Secondary:  "#445566",
			Accent:     "#778899",
			Background: "#ffffff",
			Text:       "#000000",
		},
		Typography: brandkit.Typography{HeadingFont: "Playfair Display", BodyFont: "Open Sans"},
		Assets: []brandkit.Asset{
			{ID: "a-1", Kind: brandkit.AssetLogo, Data: "data:image/png;base64,AAAA", Position: 0, CreatedAt: now},
			{ID: "a-2", Kind: brandkit.AssetImage, URL: "https://cdn.example.com/a2.png", Position: 1, CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestBrandKitRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewBrandKitRepository(openTestDB(t))

	kit := testKit()
	if err := repo.Create(ctx, kit); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if kit.ID == 0 {
		t.Fatal("expected Create to assign an id")
	}

	got, err := repo.FindByID(ctx, kit.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored kit")
	}
	if got.Name != kit.Name || got.Step != brandkit.StepPalette {
		t.Fatalf("unexpected kit: %+v", got)
	}
	if got.Palette.Primary != "#112233" {
		t.Fatalf("palette lost in round trip: %+v", got.Palette)
	}
	if got.Typography.BodyFont != "Open Sans" {
		t.Fatalf("typography lost in round trip: %+v", got.Typography)
	}
	if len(got.Assets) != 2 || got.Assets[0].ID != "a-1" || got.Assets[1].ID != "a-2" {
		t.Fatalf("assets out of order: %+v", got.Assets)
	}
}

func TestBrandKitRepositoryFindMissingReturnsNil(t *testing.T) {
	repo := NewBrandKitRepository(openTestDB(t))

	got, err := repo.FindByID(context.Background(), 99)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing kit, got %+v", got)
	}
}

func TestBrandKitRepositoryUpdateReplacesAssets(t *testing.T) {
	ctx := context.Background()
	repo := NewBrandKitRepository(openTestDB(t))

	kit := testKit()
	if err := repo.Create(ctx, kit); err != nil {
		t.Fatalf("Create: %v", err)
	}

	kit.Step = brandkit.StepTypography
	kit.Assets = []brandkit.Asset{
		{ID: "a-3", Kind: brandkit.AssetLogo, Data: "data:image/png;base64,BBBB", Position: 0, CreatedAt: time.Now()},
	}
	kit.SelectedLogoID = "a-3"
	if err := repo.Update(ctx, kit); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.FindByID(ctx, kit.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Step != brandkit.StepTypography || got.SelectedLogoID != "a-3" {
		t.Fatalf("update not persisted: %+v", got)
	}
	if len(got.Assets) != 1 || got.Assets[0].ID != "a-3" {
		t.Fatalf("expected assets replaced, got %+v", got.Assets)
	}
}

func TestBrandKitRepositoryListByOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewBrandKitRepository(openTestDB(t))

	first := testKit()
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	second := testKit()
	second.Name = "Southwind"
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create: %v", err)
	}
	other := testKit()
	other.OwnerID = 2
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create: %v", err)
	}

	kits, err := repo.ListByOwner(ctx, 1)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(kits) != 2 {
		t.Fatalf("expected 2 kits for owner 1, got %d", len(kits))
	}
}

func TestBrandKitRepositoryDeleteDropsAssets(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewBrandKitRepository(db)

	kit := testKit()
	if err := repo.Create(ctx, kit); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, kit.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := repo.FindByID(ctx, kit.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got != nil {
		t.Fatal("expected kit to be gone")
	}

	var count int64
	if err := db.Model(&AssetRecord{}).Where("kit_id = ?", kit.ID).Count(&count).Error; err != nil {
		t.Fatalf("count assets: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected orphaned assets removed, found %d", count)
	}
}
