package brandkit

import "context"

// Repository persists brand kits with their assets in stored order.
type Repository interface {
	Create(ctx context.Context, kit *BrandKit) error
	Update(ctx context.Context, kit *BrandKit) error
	FindByID(ctx context.Context, id uint) (*BrandKit, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*BrandKit, error)
	Delete(ctx context.Context, id uint) error
}
