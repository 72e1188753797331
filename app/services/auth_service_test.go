package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/auth"
)

func newAuth(users UserStore) (*AuthService, *auth.Signer) {
	signer := auth.NewSigner("test-secret")
	return NewAuthService(users, signer), signer
}

func TestAuth_Register(t *testing.T) {
	ctx := context.Background()
	users := new(mockUserStore)
	users.On("FindByEmail", ctx, "new@shop.test").Return(nil, apperrors.NotFound("User"))
	users.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return !u.IsAdmin && auth.CheckPassword(u.Password, "secret1")
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = primitive.NewObjectID()
	}).Return(nil)

	svc, signer := newAuth(users)
	u, token, err := svc.Register(ctx, &requests.Register{Name: "New", Email: "new@shop.test", Password: "secret1"})
	require.NoError(t, err)

	claims, err := signer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), claims.UserID)
	assert.False(t, claims.IsAdmin)
}

func TestAuth_RegisterExisting(t *testing.T) {
	ctx := context.Background()
	users := new(mockUserStore)
	users.On("FindByEmail", ctx, "a@shop.test").Return(&models.User{Email: "a@shop.test"}, nil)

	svc, _ := newAuth(users)
	_, _, err := svc.Register(ctx, &requests.Register{Name: "A", Email: "a@shop.test", Password: "secret1"})
	assert.Equal(t, "User already exists", apperrors.PublicMessage(err))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	stored := &models.User{ID: primitive.NewObjectID(), Email: "a@shop.test", Password: hash, IsAdmin: true}

	users := new(mockUserStore)
	users.On("FindByEmail", ctx, "a@shop.test").Return(stored, nil)
	users.On("FindByEmail", ctx, "ghost@shop.test").Return(nil, apperrors.NotFound("User"))
	svc, signer := newAuth(users)

	_, token, err := svc.Login(ctx, &requests.Login{Email: "a@shop.test", Password: "secret1"})
	require.NoError(t, err)
	claims, err := signer.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)

	for _, in := range []*requests.Login{
		{Email: "a@shop.test", Password: "wrong"},
		{Email: "ghost@shop.test", Password: "secret1"},
	} {
		_, _, err := svc.Login(ctx, in)
		assert.Equal(t, 401, apperrors.HTTPStatus(err))
		assert.Equal(t, "Invalid credentials", apperrors.PublicMessage(err))
	}
}

func TestAuth_MeForDeletedAccount(t *testing.T) {
	ctx := context.Background()
	users := new(mockUserStore)
	users.On("FindByID", ctx, "gone").Return(nil, apperrors.NotFound("User"))

	svc, _ := newAuth(users)
	_, err := svc.Me(ctx, "gone")
	assert.Equal(t, 401, apperrors.HTTPStatus(err))
}

func TestAuth_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes existing", func(t *testing.T) {
		users := new(mockUserStore)
		existing := &models.User{ID: primitive.NewObjectID(), Email: "boss@shop.test"}
		users.On("FindByEmail", ctx, "boss@shop.test").Return(existing, nil)
		users.On("Update", ctx, existing).Return(nil)

		svc, _ := newAuth(users)
		u, created, err := svc.EnsureAdmin(ctx, "", " Boss@Shop.test ", "")
		require.NoError(t, err)
		assert.False(t, created)
		assert.True(t, u.IsAdmin)
		users.AssertNotCalled(t, "SetPassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("creates new", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("FindByEmail", ctx, "boss@shop.test").Return(nil, apperrors.NotFound("User"))
		users.On("Create", ctx, mock.Anything).Return(nil)

		svc, _ := newAuth(users)
		u, created, err := svc.EnsureAdmin(ctx, "", "boss@shop.test", "hunter22")
		require.NoError(t, err)
		assert.True(t, created)
		assert.True(t, u.IsAdmin)
		assert.Equal(t, "Admin", u.Name)
	})

	t.Run("short password", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("FindByEmail", ctx, "boss@shop.test").Return(nil, apperrors.NotFound("User"))

		svc, _ := newAuth(users)
		_, _, err := svc.EnsureAdmin(ctx, "", "boss@shop.test", "abc")
		assert.Equal(t, 400, apperrors.HTTPStatus(err))
	})
}
