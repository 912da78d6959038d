package usecase

import (
	"testing"

	"blogicum/pkg/jwt"
	"blogicum/pkg/logger"
	"blogicum/services/auth/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	if args.Error(0) == nil && user.ID == "" {
		user.ID = "user-1"
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func newUseCase(repo *MockUserRepository) (AuthUseCase, *jwt.Service) {
	jwtService := jwt.NewService("test-secret")
	return NewAuthUseCase(repo, jwtService, logger.New()), jwtService
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_Success(t *testing.T) {
	repo := new(MockUserRepository)
	uc, jwtService := newUseCase(repo)

	repo.On("GetByUsername", "alice").Return(nil, entity.ErrNotFound)
	repo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	user, token, err := uc.Register(" alice ", "alice@test.com", "password123", "Alice", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	repo.AssertExpectations(t)
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo := new(MockUserRepository)
	uc, _ := newUseCase(repo)

	repo.On("GetByUsername", "alice").Return(&entity.User{ID: "other"}, nil)

	_, _, err := uc.Register("alice", "", "password123", "", "")
	assert.ErrorIs(t, err, entity.ErrUsernameTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLogin(t *testing.T) {
	repo := new(MockUserRepository)
	uc, _ := newUseCase(repo)

	stored := &entity.User{ID: "user-1", Username: "alice", PasswordHash: hash(t, "password123")}
	repo.On("GetByUsername", "alice").Return(stored, nil)
	repo.On("GetByUsername", "nobody").Return(nil, entity.ErrNotFound)

	user, token, err := uc.Login("alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, token)

	_, _, err = uc.Login("alice", "wrong")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	_, _, err = uc.Login("nobody", "password123")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	repo := new(MockUserRepository)
	uc, jwtService := newUseCase(repo)

	repo.On("GetByID", "user-1").Return(&entity.User{ID: "user-1", Username: "alice"}, nil)
	repo.On("GetByUsername", "alicia").Return(nil, entity.ErrNotFound)
	repo.On("Update", mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "alicia" && u.FirstName == "Alicia" && u.Email == "a@test.com"
	})).Return(nil)

	username, first, email := "alicia", "Alicia", "a@test.com"
	user, token, err := uc.UpdateProfile("user-1", entity.ProfileUpdate{Username: &username, FirstName: &first, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "alicia", user.Username)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alicia", claims.Username)
	repo.AssertExpectations(t)
}

func TestUpdateProfile_UsernameTaken(t *testing.T) {
	repo := new(MockUserRepository)
	uc, _ := newUseCase(repo)

	repo.On("GetByID", "user-1").Return(&entity.User{ID: "user-1", Username: "alice"}, nil)
	repo.On("GetByUsername", "bob").Return(&entity.User{ID: "user-2", Username: "bob"}, nil)

	username := "bob"
	_, _, err := uc.UpdateProfile("user-1", entity.ProfileUpdate{Username: &username})
	assert.ErrorIs(t, err, entity.ErrUsernameTaken)
	repo.AssertNotCalled(t, "Update", mock.Anything)
}
