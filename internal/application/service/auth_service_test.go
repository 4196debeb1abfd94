package service

import (
	"context"
	"testing"
	"time"

	"github.com/assistec/assistec-api/internal/domain/entity"
	"github.com/assistec/assistec-api/pkg/apperror"
	"github.com/assistec/assistec-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*AuthService, *memStore) {
	s := newMemStore()
	jwt := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(&fakeUserRepo{s}, jwt), s
}

func TestLoginAndRefresh(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &CreateUserInput{
		Name:     "Maria",
		Email:    "maria@assistec.com",
		Password: "segredo-forte",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, created.Role)

	tokens, err := svc.Login(ctx, &LoginInput{Email: "maria@assistec.com", Password: "segredo-forte"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, created.ID, tokens.User.ID)

	refreshed, err := svc.RefreshToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &CreateUserInput{
		Name: "Maria", Email: "maria@assistec.com", Password: "segredo-forte",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Email: "maria@assistec.com", Password: "errada"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Email: "ninguem@assistec.com", Password: "x"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestLoginInactiveOperator(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &CreateUserInput{
		Name: "Maria", Email: "maria@assistec.com", Password: "segredo-forte",
	})
	require.NoError(t, err)

	inactive := false
	_, err = svc.UpdateUser(ctx, user.ID, &UpdateUserInput{Active: &inactive})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Email: "maria@assistec.com", Password: "segredo-forte"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestCreateUserCoercesUnknownRole(t *testing.T) {
	svc, _ := newAuthFixture()

	user, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Name: "José", Email: "jose@assistec.com", Password: "segredo-forte", Role: "root",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAtendente, user.Role)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &CreateUserInput{
		Name: "Maria", Email: "maria@assistec.com", Password: "segredo-forte",
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, &CreateUserInput{
		Name: "Outra Maria", Email: "maria@assistec.com", Password: "outro-segredo",
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &CreateUserInput{
		Name: "Maria", Email: "maria@assistec.com", Password: "segredo-forte",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, &ChangePasswordInput{
		CurrentPassword: "errada", NewPassword: "nova-senha-longa",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	err = svc.ChangePassword(ctx, user.ID, &ChangePasswordInput{
		CurrentPassword: "segredo-forte", NewPassword: "nova-senha-longa",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Email: "maria@assistec.com", Password: "nova-senha-longa"})
	require.NoError(t, err)
}
