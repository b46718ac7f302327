package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yame/internal/auth"
	"yame/internal/domain"
)

func newTestAccountService(store *fakeStore) AccountService {
	return NewAccountService(store, auth.NewTokenIssuer("test-secret"), testLogger(), nil)
}

func TestRegister_CreatesAccountAndCustomer(t *testing.T) {
	store := newFakeStore()
	svc := newTestAccountService(store)

	result, err := svc.Register(context.Background(), domain.RegisterRequest{
		FullName: "Nguyen Van A",
		Email:    "a@example.com",
		Phone:    "0900000001",
		Password: "secret-password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, domain.RoleCustomer, result.Profile.Role)

	user := store.users[result.Profile.UserID]
	require.NotNil(t, user)
	assert.NotEqual(t, "secret-password", user.PasswordHash)

	customer, err := store.Customers().GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, "Nguyen Van A", customer.FullName)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := newTestAccountService(store)

	req := domain.RegisterRequest{FullName: "A", Email: "a@example.com", Password: "secret-password"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}

func TestLogin(t *testing.T) {
	store := newFakeStore()
	svc := newTestAccountService(store)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		FullName: "A", Email: "a@example.com", Password: "secret-password",
	})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), domain.LoginRequest{
		Email: "a@example.com", Password: "secret-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "a@example.com", result.Profile.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newFakeStore()
	svc := newTestAccountService(store)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		FullName: "A", Email: "a@example.com", Password: "secret-password",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email: "a@example.com", Password: "wrong-password",
	})
	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestLogin_UnknownEmail(t *testing.T) {
	store := newFakeStore()
	svc := newTestAccountService(store)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email: "nobody@example.com", Password: "whatever123",
	})
	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestChangePassword(t *testing.T) {
	store := newFakeStore()
	svc := newTestAccountService(store)

	result, err := svc.Register(context.Background(), domain.RegisterRequest{
		FullName: "A", Email: "a@example.com", Password: "secret-password",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), result.Profile.UserID, domain.ChangePasswordRequest{
		CurrentPassword: "secret-password",
		NewPassword:     "even-more-secret",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email: "a@example.com", Password: "even-more-secret",
	})
	require.NoError(t, err)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	store := newFakeStore()
	svc := newTestAccountService(store)

	result, err := svc.Register(context.Background(), domain.RegisterRequest{
		FullName: "A", Email: "a@example.com", Password: "secret-password",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), result.Profile.UserID, domain.ChangePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "even-more-secret",
	})
	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestUpdateProfile(t *testing.T) {
	store := newFakeStore()
	svc := newTestAccountService(store)

	result, err := svc.Register(context.Background(), domain.RegisterRequest{
		FullName: "A", Email: "a@example.com", Password: "secret-password",
	})
	require.NoError(t, err)

	profile, err := svc.UpdateProfile(context.Background(), result.Profile.UserID, domain.UpdateProfileRequest{
		FullName: "Nguyen Van B",
		Phone:    "0900000002",
		Address:  "34 Hai Ba Trung, Ben Nghe, District 1, Ho Chi Minh",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nguyen Van B", profile.FullName)
	assert.Equal(t, "34 Hai Ba Trung, Ben Nghe, District 1, Ho Chi Minh", profile.Address)
}
