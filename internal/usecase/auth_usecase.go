package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"laptophub/internal/config"
	"laptophub/internal/domain/model"
	"laptophub/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 24 * time.Hour

type AuthUsecase struct {
	cfg   config.Config
	users repository.UserRepository
}

func NewAuthUsecase(cfg config.Config, users repository.UserRepository) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, users: users}
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Address     string
	PhoneNumber string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthOutput struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthOutput, error) {
	if strings.TrimSpace(in.Name) == "" || in.Email == "" || in.Password == "" {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "Name, email, and password are required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid email format")
	}

	//email重複チェック
	existing, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil {
		log.Error().Err(err).Msg("error during registration")
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "Error during registration")
	}
	if existing != nil {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "User with this email already exists")
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("error hashing password")
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "Error during registration")
	}

	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: string(pwHash),
		Address:      in.Address,
		PhoneNumber:  in.PhoneNumber,
		IsAdmin:      false,
	}

	if err := u.users.Create(ctx, user); err != nil {
		//unique違反（同時登録）もここに落ちる
		log.Error().Err(err).Msg("error creating user")
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "User with this email already exists")
	}

	token, err := u.issueAccessToken(user)
	if err != nil {
		log.Error().Err(err).Msg("error issuing token")
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "Error during registration")
	}

	return AuthOutput{User: user, Token: token}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthOutput, error) {
	if in.Email == "" || in.Password == "" {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	user, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil {
		log.Error().Err(err).Msg("error during login")
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "Error during login")
	}
	if user == nil {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := u.issueAccessToken(user)
	if err != nil {
		log.Error().Err(err).Msg("error issuing token")
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "Error during login")
	}

	return AuthOutput{User: user, Token: token}, nil
}

// tokenから復元したprincipalで現在のユーザーを取り直す
func (u *AuthUsecase) Me(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("error fetching current user")
		return nil, NewHTTPError(http.StatusInternalServerError, "Error fetching user data")
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusNotFound, "User not found")
	}

	return user, nil
}

// jwt発行。payloadは{id, email, isAdmin}、HS256、24時間。
func (u *AuthUsecase) issueAccessToken(user *model.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"id":      user.ID,
		"email":   user.Email,
		"isAdmin": user.IsAdmin,
		"iat":     now.Unix(),
		"exp":     now.Add(accessTokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(u.cfg.JWTSecret))
}
