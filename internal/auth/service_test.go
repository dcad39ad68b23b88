package auth

import (
	"context"
	"errors"
	"testing"

	"productapi/internal/model"
	"productapi/internal/storage"
	"productapi/internal/storage/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	createFn func(ctx context.Context, u *model.User) error
	getFn    func(ctx context.Context, username string) (*model.User, error)
}

func (f fakeUsers) CreateUser(ctx context.Context, u *model.User) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, u)
}

func (f fakeUsers) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if f.getFn == nil {
		return nil, storage.ErrNotFound
	}
	return f.getFn(ctx, username)
}

func newService(users storage.UserStore) *Service {
	return NewService(users, NewTokens("secret", 0), bcrypt.MinCost)
}

func TestRegisterThenLogin(t *testing.T) {
	svc := newService(memstore.New())
	ctx := context.Background()

	token, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	claims, err := svc.tokens.Verify(token)
	require.NoError(t, err)
	assert.True(t, storage.ValidID(claims.Subject))

	loginToken, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	loginClaims, err := svc.tokens.Verify(loginToken)
	require.NoError(t, err)
	assert.Equal(t, claims.Subject, loginClaims.Subject)
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newService(memstore.New())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	token, err := svc.Register(ctx, "alice", "pw2")
	assert.ErrorIs(t, err, ErrUserExists)
	assert.Empty(t, token)
}

func TestRegisterValidation(t *testing.T) {
	svc := newService(memstore.New())

	_, err := svc.Register(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Register(context.Background(), "alice", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	var stored *model.User
	svc := newService(fakeUsers{createFn: func(_ context.Context, u *model.User) error {
		stored = u
		return nil
	}})

	_, err := svc.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "pw1", stored.PasswordHash)
	assert.True(t, CheckPassword("pw1", stored.PasswordHash))
}

func TestRegisterStoreFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newService(fakeUsers{createFn: func(context.Context, *model.User) error { return boom }})

	_, err := svc.Register(context.Background(), "alice", "pw1")
	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, OpRegister, opErr.Op)
	assert.ErrorIs(t, err, boom)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newService(memstore.New())
	ctx := context.Background()
	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)

	token, err = svc.Login(ctx, "nobody", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestLoginStoreFailure(t *testing.T) {
	boom := errors.New("timeout")
	svc := newService(fakeUsers{getFn: func(context.Context, string) (*model.User, error) { return nil, boom }})

	_, err := svc.Login(context.Background(), "alice", "pw1")
	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, OpLogin, opErr.Op)
	assert.Equal(t, "auth login: timeout", err.Error())
}
