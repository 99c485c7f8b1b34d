package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"laptophub/internal/domain/model"
	repo "laptophub/internal/repository"

	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type LaptopUsecase struct {
	laptopRepo repo.LaptopRepository
}

// DI
func NewLaptopUsecase(laptopRepo repo.LaptopRepository) *LaptopUsecase {
	return &LaptopUsecase{laptopRepo: laptopRepo}
}

func (u *LaptopUsecase) List(ctx context.Context) ([]model.Laptop, error) {
	items, err := u.laptopRepo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error fetching laptops")
		return nil, NewHTTPError(http.StatusInternalServerError, "Error fetching laptops")
	}
	return items, nil
}

func (u *LaptopUsecase) Search(ctx context.Context, query string) ([]model.Laptop, error) {
	if strings.TrimSpace(query) == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "Search query is required")
	}

	items, err := u.laptopRepo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("error searching laptops")
		return nil, NewHTTPError(http.StatusInternalServerError, "Error searching laptops")
	}
	return items, nil
}

func (u *LaptopUsecase) Get(ctx context.Context, laptopID int64) (model.Laptop, error) {
	if laptopID <= 0 {
		return model.Laptop{}, NewHTTPError(http.StatusBadRequest, "Invalid laptop id")
	}

	l, err := u.laptopRepo.FindByID(ctx, laptopID)
	if err == repo.ErrNotFound {
		return model.Laptop{}, NewHTTPError(http.StatusNotFound, "Laptop not found")
	}
	if err != nil {
		log.Error().Err(err).Int64("laptop_id", laptopID).Msg("error fetching laptop")
		return model.Laptop{}, NewHTTPError(http.StatusInternalServerError, "Error fetching laptop")
	}
	return l, nil
}

type LaptopInput struct {
	Name          string
	Brand         string
	Price         int64
	OriginalPrice int64
	Image         string
	Description   string
	Processor     string
	RAM           string
	Storage       string
	Display       string
	OS            string
	InStock       bool
	IsNew         bool
	Rating        float64
	Reviews       int64
}

func (u *LaptopUsecase) AdminCreate(ctx context.Context, in LaptopInput) (model.Laptop, error) {
	if err := validateLaptopInput(in); err != nil {
		return model.Laptop{}, err
	}

	l := laptopFromInput(in)

	id, err := u.laptopRepo.Create(ctx, l)
	if err != nil {
		log.Error().Err(err).Msg("error creating laptop")
		return model.Laptop{}, NewHTTPError(http.StatusInternalServerError, "Error creating laptop")
	}

	created, err := u.laptopRepo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("laptop_id", id).Msg("error reading created laptop")
		return model.Laptop{}, NewHTTPError(http.StatusInternalServerError, "Error creating laptop")
	}
	return created, nil
}

func (u *LaptopUsecase) AdminUpdate(ctx context.Context, laptopID int64, in LaptopInput) (model.Laptop, error) {
	if laptopID <= 0 {
		return model.Laptop{}, NewHTTPError(http.StatusBadRequest, "Invalid laptop id")
	}
	if err := validateLaptopInput(in); err != nil {
		return model.Laptop{}, err
	}

	//存在確認
	if _, err := u.laptopRepo.FindByID(ctx, laptopID); err != nil {
		if err == repo.ErrNotFound {
			return model.Laptop{}, NewHTTPError(http.StatusNotFound, "Laptop not found")
		}
		log.Error().Err(err).Int64("laptop_id", laptopID).Msg("error fetching laptop")
		return model.Laptop{}, NewHTTPError(http.StatusInternalServerError, "Error updating laptop")
	}

	l := laptopFromInput(in)
	l.ID = laptopID

	if err := u.laptopRepo.Update(ctx, l); err != nil {
		if err == repo.ErrNotFound {
			return model.Laptop{}, NewHTTPError(http.StatusNotFound, "Laptop not found")
		}
		log.Error().Err(err).Int64("laptop_id", laptopID).Msg("error updating laptop")
		return model.Laptop{}, NewHTTPError(http.StatusInternalServerError, "Error updating laptop")
	}

	updated, err := u.laptopRepo.FindByID(ctx, laptopID)
	if err != nil {
		log.Error().Err(err).Int64("laptop_id", laptopID).Msg("error reading updated laptop")
		return model.Laptop{}, NewHTTPError(http.StatusInternalServerError, "Error updating laptop")
	}
	return updated, nil
}

func (u *LaptopUsecase) AdminDelete(ctx context.Context, laptopID int64) error {
	if laptopID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "Invalid laptop id")
	}

	err := u.laptopRepo.Delete(ctx, laptopID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Laptop not found")
	}
	if err != nil {
		log.Error().Err(err).Int64("laptop_id", laptopID).Msg("error deleting laptop")
		return NewHTTPError(http.StatusInternalServerError, "Error deleting laptop")
	}
	return nil
}

func validateLaptopInput(in LaptopInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "Name is required")
	}
	if strings.TrimSpace(in.Brand) == "" {
		return NewHTTPError(http.StatusBadRequest, "Brand is required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "Price must be >= 0")
	}
	if in.OriginalPrice < 0 {
		return NewHTTPError(http.StatusBadRequest, "Original price must be >= 0")
	}
	return nil
}

func laptopFromInput(in LaptopInput) model.Laptop {
	l := model.Laptop{
		Name:          strings.TrimSpace(in.Name),
		Brand:         strings.TrimSpace(in.Brand),
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Image:         in.Image,
		Description:   in.Description,
		Processor:     in.Processor,
		RAM:           in.RAM,
		Storage:       in.Storage,
		Display:       in.Display,
		OS:            in.OS,
		InStock:       in.InStock,
		IsNew:         in.IsNew,
		Rating:        in.Rating,
		Reviews:       in.Reviews,
	}

	//割引率はサーバー側で再計算する
	if l.OriginalPrice > 0 && l.Price > 0 {
		l.Discount = int64(math.Round(float64(l.OriginalPrice-l.Price) / float64(l.OriginalPrice) * 100))
	}

	return l
}
