package commands

//go:generate mockgen -source=catalog.go -destination=../../../tests/mock/commands/catalog.go -package=commandsmock

import (
	"context"
	"log/slog"

	"food-delivery-api/internal/domain/catalog"
	"food-delivery-api/internal/domain/outlet"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/patch"
	"food-delivery-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VariationInput struct {
	Name      string
	Price     pricing.Money
	MaxAddons int
}

type AddonInput struct {
	Name  string
	Price pricing.Money
	Type  string
}

type CreateItemInput struct {
	OutletID        uuid.UUID
	Name            string
	Category        string
	Description     string
	ImageURL        string
	IsVeg           bool
	Price           pricing.Money
	DiscountPercent decimal.Decimal
	Variations      []VariationInput
	Addons          []AddonInput
	IsAvailable     *bool
}

// UpdateItemInput is a PATCH. A non-nil slice replaces the whole list.
type UpdateItemInput struct {
	Name            *string
	Category        *string
	Description     *string
	ImageURL        *string
	IsVeg           *bool
	Price           *pricing.Money
	DiscountPercent *decimal.Decimal
	Variations      []VariationInput
	Addons          []AddonInput
	IsAvailable     *bool
}

type CatalogCommands interface {
	CreateItem(ctx context.Context, in CreateItemInput) (*catalog.Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, in UpdateItemInput) (*catalog.Item, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*catalog.Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type catalogCommandsImpl struct {
	uow   shared.UnitOfWork
	cache shared.CatalogInvalidator
}

func NewCatalogCommands(uow shared.UnitOfWork, cache shared.CatalogInvalidator) CatalogCommands {
	return &catalogCommandsImpl{uow: uow, cache: cache}
}

func (uc *catalogCommandsImpl) CreateItem(ctx context.Context, in CreateItemInput) (*catalog.Item, error) {
	variations, err := toVariations(in.Variations)
	if err != nil {
		return nil, err
	}
	addons, err := toAddons(in.Addons)
	if err != nil {
		return nil, err
	}
	it, err := catalog.NewItem(in.OutletID, catalog.Details{
		Name:            in.Name,
		Category:        in.Category,
		Description:     in.Description,
		ImageURL:        in.ImageURL,
		IsVeg:           in.IsVeg,
		Price:           in.Price,
		DiscountPercent: in.DiscountPercent,
		Variations:      variations,
		Addons:          addons,
		IsAvailable:     patch.Coalesce(in.IsAvailable, true),
	})
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Items().OutletExists(ctx, in.OutletID)
		if err != nil {
			return err
		}
		if !ok {
			return outlet.ErrOutletNotFound
		}
		return tx.Items().Create(ctx, it)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, it.ID())
	return it, nil
}

func (uc *catalogCommandsImpl) UpdateItem(ctx context.Context, id uuid.UUID, in UpdateItemInput) (*catalog.Item, error) {
	var out *catalog.Item
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		it, err := tx.Items().FindByID(ctx, id)
		if err != nil {
			return err
		}

		d := it.Details()
		patch.Field(&d.Name, in.Name)
		patch.Field(&d.Category, in.Category)
		patch.Field(&d.Description, in.Description)
		patch.Field(&d.ImageURL, in.ImageURL)
		patch.Field(&d.IsVeg, in.IsVeg)
		patch.Field(&d.Price, in.Price)
		patch.Field(&d.DiscountPercent, in.DiscountPercent)
		patch.Field(&d.IsAvailable, in.IsAvailable)
		if in.Variations != nil {
			if d.Variations, err = toVariations(in.Variations); err != nil {
				return err
			}
		}
		if in.Addons != nil {
			if d.Addons, err = toAddons(in.Addons); err != nil {
				return err
			}
		}

		if err := it.Update(d); err != nil {
			return err
		}
		if err := tx.Items().Update(ctx, it); err != nil {
			return err
		}
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, id)
	return out, nil
}

func (uc *catalogCommandsImpl) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*catalog.Item, error) {
	return uc.UpdateItem(ctx, id, UpdateItemInput{IsAvailable: &available})
}

// DeleteItem removes the item and its reviews. Orders and carts keep
// their snapshots of it.
func (uc *catalogCommandsImpl) DeleteItem(ctx context.Context, id uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Items().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

func (uc *catalogCommandsImpl) invalidate(ctx context.Context, id uuid.UUID) {
	if err := invalidateItem(ctx, uc.cache, id); err != nil {
		slog.WarnContext(ctx, "catalog cache invalidation failed", "item_id", id, "error", err)
	}
}

func invalidateItem(ctx context.Context, cache shared.CatalogInvalidator, id uuid.UUID) error {
	if cache == nil {
		return nil
	}
	return cache.InvalidateItem(ctx, id)
}

func toVariations(in []VariationInput) ([]catalog.Variation, error) {
	out := make([]catalog.Variation, 0, len(in))
	for _, v := range in {
		vv, err := catalog.NewVariation(v.Name, v.Price, v.MaxAddons)
		if err != nil {
			return nil, err
		}
		out = append(out, vv)
	}
	return out, nil
}

func toAddons(in []AddonInput) ([]catalog.Addon, error) {
	out := make([]catalog.Addon, 0, len(in))
	for _, a := range in {
		aa, err := catalog.NewAddon(a.Name, a.Price, catalog.AddonType(a.Type))
		if err != nil {
			return nil, err
		}
		out = append(out, aa)
	}
	return out, nil
}
