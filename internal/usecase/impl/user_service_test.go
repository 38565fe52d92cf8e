package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/repository"
	"usersvc/internal/infra/auth"
	mockRepo "usersvc/internal/mocks/repository"
	mockService "usersvc/internal/mocks/service"
	"usersvc/internal/usecase"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service  usecase.UserUsecase
	userRepo *mockRepo.MockUserRepository
	hasher   *mockService.MockPasswordHasher
}

func createTestUserService(t *testing.T) userServiceFixtures {
	t.Helper()

	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewUserService(UserServiceParams{
		UserRepo: userRepo,
		Hasher:   hasher,
		Logger:   logger,
	})

	return userServiceFixtures{
		service:  service,
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func strPtr(s string) *string {
	return &s
}

func TestUserService_ListUsers_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	expected := []*entity.User{
		{ID: 1, Username: "alice", Email: "a@x.com", PasswordHash: "hash1"},
		{ID: 2, Username: "bob", Email: "b@x.com", PasswordHash: "hash2"},
	}
	fx.userRepo.On("FindAll", ctx).Return(expected, nil)

	users, err := fx.service.ListUsers(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, users)
}

func TestUserService_ListUsers_Empty(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.On("FindAll", ctx).Return([]*entity.User{}, nil)

	users, err := fx.service.ListUsers(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNoUsers)
	assert.Nil(t, users)
}

func TestUserService_ListUsers_RepoError(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.On("FindAll", ctx).Return(nil, errors.New("connection refused"))

	_, err := fx.service.ListUsers(ctx)

	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrNoUsers)
}

func TestUserService_GetUser_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	expected := &entity.User{ID: 7, Username: "alice", Email: "a@x.com"}
	fx.userRepo.On("FindByID", ctx, int64(7)).Return(expected, nil)

	user, err := fx.service.GetUser(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, expected, user)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByID", ctx, int64(42)).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.GetUser(ctx, 42)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_CreateUser_HashesPassword(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	input := &usecase.CreateUserInput{Username: "alice", Email: "a@x.com", Password: "secret1"}

	fx.hasher.On("Hash", "secret1").Return("$2a$10$hash", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			// The plaintext never reaches the store.
			assert.Equal(t, "$2a$10$hash", user.PasswordHash)
			assert.NotEqual(t, "secret1", user.PasswordHash)
			user.ID = 1
		}).
		Return(nil)

	user, err := fx.service.CreateUser(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestUserService_CreateUser_HashError(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	input := &usecase.CreateUserInput{Username: "alice", Email: "a@x.com", Password: "secret1"}
	fx.hasher.On("Hash", "secret1").Return("", errors.New("bcrypt unavailable"))

	_, err := fx.service.CreateUser(ctx, input)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_CreateUser_RealHasherRoundTrip(t *testing.T) {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewUserService(UserServiceParams{
		UserRepo: userRepo,
		Hasher:   hasher,
		Logger:   logger,
	})

	ctx := context.Background()
	var stored entity.User
	userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = 1
			stored = *user
		}).
		Return(nil)

	_, err := service.CreateUser(ctx, &usecase.CreateUserInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, hasher.Check("secret1", stored.PasswordHash))
}

func TestUserService_UpdateUser_EmailOnly(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	input := &usecase.UpdateUserInput{Email: strPtr("a2@x.com")}
	updated := &entity.User{ID: 3, Username: "alice", Email: "a2@x.com", PasswordHash: "hash"}

	fx.userRepo.On("Update", ctx, int64(3), mock.MatchedBy(func(changes entity.UserChanges) bool {
		// Only the supplied field reaches the store.
		return changes.Username == nil &&
			changes.PasswordHash == nil &&
			changes.Email != nil && *changes.Email == "a2@x.com"
	})).Return(updated, nil)

	user, err := fx.service.UpdateUser(ctx, 3, input)

	require.NoError(t, err)
	assert.Equal(t, updated, user)
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestUserService_UpdateUser_PasswordIsHashed(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	input := &usecase.UpdateUserInput{Password: strPtr("newsecret")}
	updated := &entity.User{ID: 3, Username: "alice", Email: "a@x.com", PasswordHash: "$2a$10$newhash"}

	fx.hasher.On("Hash", "newsecret").Return("$2a$10$newhash", nil)
	fx.userRepo.On("Update", ctx, int64(3), mock.MatchedBy(func(changes entity.UserChanges) bool {
		return changes.PasswordHash != nil && *changes.PasswordHash == "$2a$10$newhash"
	})).Return(updated, nil)

	user, err := fx.service.UpdateUser(ctx, 3, input)

	require.NoError(t, err)
	assert.Equal(t, updated, user)
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	input := &usecase.UpdateUserInput{Email: strPtr("a2@x.com")}
	fx.userRepo.On("Update", ctx, int64(42), mock.AnythingOfType("entity.UserChanges")).
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.UpdateUser(ctx, 42, input)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_DeleteUser_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	deleted := &entity.User{ID: 5, Username: "alice", Email: "a@x.com"}
	fx.userRepo.On("Delete", ctx, int64(5)).Return(deleted, nil)

	user, err := fx.service.DeleteUser(ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, deleted, user)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.On("Delete", ctx, int64(42)).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.DeleteUser(ctx, 42)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
