package usecase

import (
	"context"
	"net/http"

	"laptophub/internal/domain/model"
	repo "laptophub/internal/repository"

	"github.com/rs/zerolog/log"
)

type WishlistUsecase struct {
	wishlist repo.WishlistRepository
	laptops  repo.LaptopRepository
}

// DI
func NewWishlistUsecase(wishlist repo.WishlistRepository, laptops repo.LaptopRepository) *WishlistUsecase {
	return &WishlistUsecase{wishlist: wishlist, laptops: laptops}
}

type WishlistItemOutput struct {
	model.Wishlist
	Laptop *model.Laptop `json:"laptop,omitempty"`
}

func (u *WishlistUsecase) ListByUser(ctx context.Context, userID int64) ([]WishlistItemOutput, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "Invalid user id")
	}

	items, err := u.wishlist.ListByUserID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("error fetching wishlist")
		return nil, NewHTTPError(http.StatusInternalServerError, "Error fetching wishlist")
	}

	outs := make([]WishlistItemOutput, 0, len(items))
	for _, it := range items {
		out, err := u.withLaptop(ctx, it)
		if err != nil {
			return nil, err
		}
		outs = append(outs, out)
	}
	return outs, nil
}

func (u *WishlistUsecase) Add(ctx context.Context, userID int64, laptopID int64) (WishlistItemOutput, error) {
	if userID <= 0 || laptopID <= 0 {
		return WishlistItemOutput{}, NewHTTPError(http.StatusBadRequest, "userId and laptopId are required")
	}

	//すでに入っていたら400
	_, found, err := u.wishlist.FindByUserAndLaptop(ctx, userID, laptopID)
	if err != nil {
		log.Error().Err(err).Msg("error checking wishlist")
		return WishlistItemOutput{}, NewHTTPError(http.StatusInternalServerError, "Error adding to wishlist")
	}
	if found {
		return WishlistItemOutput{}, NewHTTPError(http.StatusBadRequest, "Item already exists in wishlist")
	}

	//laptopの存在確認
	if _, err := u.laptops.FindByID(ctx, laptopID); err != nil {
		if err == repo.ErrNotFound {
			return WishlistItemOutput{}, NewHTTPError(http.StatusNotFound, "Laptop not found")
		}
		log.Error().Err(err).Int64("laptop_id", laptopID).Msg("error fetching laptop")
		return WishlistItemOutput{}, NewHTTPError(http.StatusInternalServerError, "Error adding to wishlist")
	}

	id, err := u.wishlist.Create(ctx, model.Wishlist{UserID: userID, LaptopID: laptopID})
	if err != nil {
		log.Error().Err(err).Msg("error adding to wishlist")
		return WishlistItemOutput{}, NewHTTPError(http.StatusInternalServerError, "Error adding to wishlist")
	}

	created, err := u.wishlist.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("wishlist_id", id).Msg("error reading wishlist item")
		return WishlistItemOutput{}, NewHTTPError(http.StatusInternalServerError, "Error adding to wishlist")
	}

	return u.withLaptop(ctx, created)
}

func (u *WishlistUsecase) Remove(ctx context.Context, userID int64, laptopID int64) error {
	if userID <= 0 || laptopID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "Invalid user or laptop id")
	}

	err := u.wishlist.Delete(ctx, userID, laptopID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Item not found in wishlist")
	}
	if err != nil {
		log.Error().Err(err).Msg("error removing from wishlist")
		return NewHTTPError(http.StatusInternalServerError, "Error removing from wishlist")
	}
	return nil
}

type WishlistCheckOutput struct {
	IsInWishlist bool `json:"isInWishlist"`
}

func (u *WishlistUsecase) Check(ctx context.Context, userID int64, laptopID int64) (WishlistCheckOutput, error) {
	if userID <= 0 || laptopID <= 0 {
		return WishlistCheckOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid user or laptop id")
	}

	_, found, err := u.wishlist.FindByUserAndLaptop(ctx, userID, laptopID)
	if err != nil {
		log.Error().Err(err).Msg("error checking wishlist item")
		return WishlistCheckOutput{}, NewHTTPError(http.StatusInternalServerError, "Error checking wishlist item")
	}
	return WishlistCheckOutput{IsInWishlist: found}, nil
}

func (u *WishlistUsecase) withLaptop(ctx context.Context, it model.Wishlist) (WishlistItemOutput, error) {
	var laptop *model.Laptop
	l, err := u.laptops.FindByID(ctx, it.LaptopID)
	if err == nil {
		laptop = &l
	} else if err != repo.ErrNotFound {
		log.Error().Err(err).Int64("laptop_id", it.LaptopID).Msg("error fetching laptop for wishlist")
		return WishlistItemOutput{}, NewHTTPError(http.StatusInternalServerError, "Error fetching wishlist")
	}
	return WishlistItemOutput{Wishlist: it, Laptop: laptop}, nil
}
