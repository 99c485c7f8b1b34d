package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"laptophub/internal/config"
	"laptophub/internal/domain/model"
	"laptophub/internal/repository"
	"laptophub/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// UserRepository モック
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	us, _ := args.Get(0).([]model.User)
	return us, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ repository.UserRepository = (*UserRepoMock)(nil)

func testAuthConfig() config.Config {
	return config.Config{JWTSecret: "test-secret"}
}

// =====================
// Register
// =====================

func TestAuthUsecase_Register_Success(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
		u := args.Get(1).(*model.User)
		u.ID = 10
	}).Return(nil)

	uc := usecase.NewAuthUsecase(testAuthConfig(), users)

	out, err := uc.Register(ctx, usecase.RegisterInput{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, out.User)
	assert.Equal(t, int64(10), out.User.ID)
	assert.False(t, out.User.IsAdmin)

	//平文では保存しない
	assert.NotEqual(t, "secret123", out.User.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(out.User.PasswordHash), []byte("secret123")))

	//tokenのclaimsは{id, email, isAdmin}
	token, parseErr := jwt.Parse(out.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, parseErr)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(10), claims["id"])
	assert.Equal(t, "new@example.com", claims["email"])
	assert.Equal(t, false, claims["isAdmin"])

	users.AssertExpectations(t)
}

func TestAuthUsecase_Register_MissingFields(t *testing.T) {
	uc := usecase.NewAuthUsecase(testAuthConfig(), new(UserRepoMock))

	_, err := uc.Register(context.Background(), usecase.RegisterInput{Email: "a@b.com"})
	assertHTTPError(t, err, http.StatusBadRequest, "Name, email, and password are required")
}

func TestAuthUsecase_Register_InvalidEmail(t *testing.T) {
	uc := usecase.NewAuthUsecase(testAuthConfig(), new(UserRepoMock))

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name: "A", Email: "not-an-email", Password: "x",
	})
	assertHTTPError(t, err, http.StatusBadRequest, "Invalid email format")
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(&model.User{ID: 1, Email: "taken@example.com"}, nil)

	uc := usecase.NewAuthUsecase(testAuthConfig(), users)

	_, err := uc.Register(ctx, usecase.RegisterInput{
		Name: "A", Email: "taken@example.com", Password: "x",
	})
	assertHTTPError(t, err, http.StatusBadRequest, "User with this email already exists")
}

// =====================
// Login
// =====================

func TestAuthUsecase_Login_Success(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "user@example.com").Return(&model.User{
		ID: 3, Name: "U", Email: "user@example.com", PasswordHash: string(hash), IsAdmin: true,
	}, nil)

	uc := usecase.NewAuthUsecase(testAuthConfig(), users)

	out, err := uc.Login(ctx, usecase.LoginInput{Email: "user@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.User.ID)
	assert.NotEmpty(t, out.Token)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	uc := usecase.NewAuthUsecase(testAuthConfig(), users)

	_, err := uc.Login(ctx, usecase.LoginInput{Email: "nobody@example.com", Password: "x"})
	assertHTTPError(t, err, http.StatusUnauthorized, "Invalid email or password")
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	require.NoError(t, err)

	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "user@example.com").Return(&model.User{
		ID: 3, Email: "user@example.com", PasswordHash: string(hash),
	}, nil)

	uc := usecase.NewAuthUsecase(testAuthConfig(), users)

	_, err = uc.Login(ctx, usecase.LoginInput{Email: "user@example.com", Password: "wrong"})
	assertHTTPError(t, err, http.StatusUnauthorized, "Invalid email or password")
}

// =====================
// Me
// =====================

func TestAuthUsecase_Me_NotFound(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(99)).Return(nil, nil)

	uc := usecase.NewAuthUsecase(testAuthConfig(), users)

	_, err := uc.Me(ctx, 99)
	assertHTTPError(t, err, http.StatusNotFound, "User not found")
}
