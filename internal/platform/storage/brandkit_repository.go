package storage

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sort"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"brandkit-server-go/internal/domain/brandkit"
	"brandkit-server-go/internal/platform/errors"
)

type brandKitRepository struct {
	db *gorm.DB
}

// NewBrandKitRepository creates the gorm-backed kit repository.
func NewBrandKitRepository(db *gorm.DB) brandkit.Repository {
	return &brandKitRepository{db: db}
}

func (r *brandKitRepository) Create(ctx context.Context, kit *brandkit.BrandKit) error {
	record, err := r.toRecord(kit)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		kit.ID = record.ID
		return r.saveAssets(tx, kit)
	})
	if err != nil {
		return errors.Wrap(errors.KindStorage, "brandkit.create", "failed to create brand kit", err)
	}
	return nil
}

func (r *brandKitRepository) Update(ctx context.Context, kit *brandkit.BrandKit) error {
	record, err := r.toRecord(kit)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(record).Error; err != nil {
			return err
		}
		if err := tx.Where("kit_id = ?", kit.ID).Delete(&AssetRecord{}).Error; err != nil {
			return err
		}
		return r.saveAssets(tx, kit)
	})
	if err != nil {
		return errors.Wrap(errors.KindStorage, "brandkit.update", "failed to update brand kit", err)
	}
	return nil
}

func (r *brandKitRepository) FindByID(ctx context.Context, id uint) (*brandkit.BrandKit, error) {
	var record BrandKitRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindStorage, "brandkit.find_by_id", "failed to find brand kit", err)
	}

	var assetRecords []AssetRecord
	if err := r.db.WithContext(ctx).Where("kit_id = ?", record.ID).Order("position asc").Find(&assetRecords).Error; err != nil {
		return nil, errors.Wrap(errors.KindStorage, "brandkit.find_by_id", "failed to load assets", err)
	}
	return r.fromRecord(&record, assetRecords)
}

func (r *brandKitRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*brandkit.BrandKit, error) {
	var records []BrandKitRecord
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at asc").Find(&records).Error; err != nil {
		return nil, errors.Wrap(errors.KindStorage, "brandkit.list_by_owner", "failed to list brand kits", err)
	}

	kits := make([]*brandkit.BrandKit, 0, len(records))
	for i := range records {
		var assetRecords []AssetRecord
		if err := r.db.WithContext(ctx).Where("kit_id = ?", records[i].ID).Order("position asc").Find(&assetRecords).Error; err != nil {
			return nil, errors.Wrap(errors.KindStorage, "brandkit.list_by_owner", "failed to load assets", err)
		}
		kit, err := r.fromRecord(&records[i], assetRecords)
		if err != nil {
			return nil, err
		}
		kits = append(kits, kit)
	}
	return kits, nil
}

func (r *brandKitRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kit_id = ?", id).Delete(&AssetRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&BrandKitRecord{}, id).Error
	})
	if err != nil {
		return errors.Wrap(errors.KindStorage, "brandkit.delete", "failed to delete brand kit", err)
	}
	return nil
}

func (r *brandKitRepository) saveAssets(tx *gorm.DB, kit *brandkit.BrandKit) error {
	for _, asset := range kit.Assets {
		record := &AssetRecord{
			ID:        asset.ID,
			KitID:     kit.ID,
			Kind:      string(asset.Kind),
			Data:      asset.Data,
			URL:       asset.URL,
			Prompt:    asset.Prompt,
			Position:  asset.Position,
			CreatedAt: asset.CreatedAt,
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *brandKitRepository) toRecord(kit *brandkit.BrandKit) (*BrandKitRecord, error) {
	palette, err := json.Marshal(kit.Palette)
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "brandkit.encode", "failed to encode palette", err)
	}
	typography, err := json.Marshal(kit.Typography)
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "brandkit.encode", "failed to encode typography", err)
	}
	return &BrandKitRecord{
		ID:              kit.ID,
		OwnerID:         kit.OwnerID,
		Name:            kit.Name,
		Description:     kit.Description,
		Industry:        kit.Industry,
		Step:            string(kit.Step),
		Palette:         datatypes.JSON(palette),
		Typography:      datatypes.JSON(typography),
		SelectedLogoID:  kit.SelectedLogoID,
		UploadedLogoRef: kit.UploadedLogoRef,
		CreatedAt:       kit.CreatedAt,
		UpdatedAt:       kit.UpdatedAt,
	}, nil
}

func (r *brandKitRepository) fromRecord(record *BrandKitRecord, assetRecords []AssetRecord) (*brandkit.BrandKit, error) {
	kit := &brandkit.BrandKit{
		ID:              record.ID,
		OwnerID:         record.OwnerID,
		Name:            record.Name,
		Description:     record.Description,
		Industry:        record.Industry,
		Step:            brandkit.WizardStep(record.Step),
		SelectedLogoID:  record.SelectedLogoID,
		UploadedLogoRef: record.UploadedLogoRef,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
	if len(record.Palette) > 0 {
		if err := json.Unmarshal(record.Palette, &kit.Palette); err != nil {
			return nil, errors.Wrap(errors.KindStorage, "brandkit.decode", "failed to decode palette", err)
		}
	}
	if len(record.Typography) > 0 {
		if err := json.Unmarshal(record.Typography, &kit.Typography); err != nil {
			return nil, errors.Wrap(errors.KindStorage, "brandkit.decode", "failed to decode typography", err)
		}
	}

	sort.Slice(assetRecords, func(i, j int) bool {
		return assetRecords[i].Position < assetRecords[j].Position
	})
	for _, ar := range assetRecords {
		kit.Assets = append(kit.Assets, brandkit.Asset{
			ID:        ar.ID,
			Kind:      brandkit.AssetKind(ar.Kind),
			Data:      ar.Data,
			URL:       ar.URL,
			Prompt:    ar.Prompt,
			Position:  ar.Position,
			CreatedAt: ar.CreatedAt,
		})
	}
	return kit, nil
}
