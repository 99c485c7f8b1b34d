package usecase

import (
	"context"
	"net/http"
	"strings"

	"laptophub/internal/domain/model"
	repo "laptophub/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type UserUsecase struct {
	users repo.UserRepository
}

// DI
func NewUserUsecase(users repo.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

func (u *UserUsecase) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "Invalid user id")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("error fetching user")
		return nil, NewHTTPError(http.StatusInternalServerError, "Error fetching user")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusNotFound, "User not found")
	}
	return user, nil
}

func (u *UserUsecase) AdminList(ctx context.Context) ([]model.User, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error fetching users")
		return nil, NewHTTPError(http.StatusInternalServerError, "Error fetching users")
	}
	return users, nil
}

type UpdateProfileInput struct {
	Name            string
	Email           string
	Address         *string
	PhoneNumber     *string
	CurrentPassword string
	NewPassword     string
}

// プロフィール更新。パスワード変更はcurrentPasswordの照合が必須。
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*model.User, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "Invalid user id")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("error fetching user")
		return nil, NewHTTPError(http.StatusInternalServerError, "Error updating user profile")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusNotFound, "User not found")
	}

	//email変更なら重複チェック
	if in.Email != "" && in.Email != user.Email {
		existing, err := u.users.FindByEmail(ctx, in.Email)
		if err != nil {
			log.Error().Err(err).Msg("error checking email")
			return nil, NewHTTPError(http.StatusInternalServerError, "Error updating user profile")
		}
		if existing != nil {
			return nil, NewHTTPError(http.StatusBadRequest, "Email already exists")
		}
		user.Email = in.Email
	}

	//パスワード変更（両方そろっているときだけ）
	if in.CurrentPassword != "" && in.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, "Current password is incorrect")
		}
		newHash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Error().Err(err).Msg("error hashing password")
			return nil, NewHTTPError(http.StatusInternalServerError, "Error updating user profile")
		}
		user.PasswordHash = string(newHash)
	}

	if strings.TrimSpace(in.Name) != "" {
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}

	if err := u.users.Update(ctx, user); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("error updating user profile")
		return nil, NewHTTPError(http.StatusInternalServerError, "Error updating user profile")
	}

	return user, nil
}

func (u *UserUsecase) AdminDelete(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "Invalid user id")
	}

	err := u.users.Delete(ctx, userID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("error deleting user")
		return NewHTTPError(http.StatusInternalServerError, "Error deleting user")
	}
	return nil
}
