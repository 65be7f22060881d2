package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"officebook/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) GenerateToken(userID int64, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

func TestRegister_DefaultsToRenterRole(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenIssuer)
	svc := NewService(users, tokens, nil)

	users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 42
		}).Return(nil)
	tokens.On("GenerateToken", int64(42), "new@example.com", "renter").Return("tok", nil)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "New@Example.com",
		Password: "long-enough-password",
		Name:     "New Renter",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleRenter, resp.User.Role)
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.Equal(t, "tok", resp.Token)
	assert.Empty(t, resp.User.PasswordHash)

	users.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("long-enough-password")) == nil
	}))
}

func TestRegister_EmailTaken(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenIssuer)
	svc := NewService(users, tokens, nil)

	users.On("GetByEmail", mock.Anything, "taken@example.com").Return(&domain.User{ID: 1}, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "long-enough-password",
		Name:     "Dup",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenIssuer)
	svc := NewService(users, tokens, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "sneaky@example.com",
		Password: "long-enough-password",
		Name:     "Sneaky",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLogin_Success(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenIssuer)
	svc := NewService(users, tokens, nil)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "renter@example.com").Return(&domain.User{
		ID:           42,
		Email:        "renter@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleRenter,
	}, nil)
	tokens.On("GenerateToken", int64(42), "renter@example.com", "renter").Return("tok", nil)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "renter@example.com",
		Password: "correct-password",
	})
	assert.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
	assert.Empty(t, resp.User.PasswordHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenIssuer)
	svc := NewService(users, tokens, nil)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "renter@example.com").Return(&domain.User{
		ID:           42,
		Email:        "renter@example.com",
		PasswordHash: string(hash),
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "renter@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenIssuer)
	svc := NewService(users, tokens, nil)

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
