package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/services"
	"github.com/favourfurniture/storefront/pkg/auth"
	"github.com/favourfurniture/storefront/pkg/testkit"
)

func TestRegisterAndLogin(t *testing.T) {
	testkit.NewDB(t, &models.User{})
	svc := services.NewAuthService()

	user, token, err := svc.Register(services.RegisterInput{
		Name:     "Ada Obi",
		Email:    "Ada@Example.com",
		Password: "secret123",
		Phone:    "080 1234 5678",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "ada@example.com", user.Email)
	require.Equal(t, models.RoleCustomer, user.Role)
	require.Equal(t, "08012345678", user.Phone)
	require.NotEqual(t, "secret123", user.Password) // stored hashed

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, models.RoleCustomer, claims.Role)

	// Duplicate email is rejected regardless of case.
	_, _, err = svc.Register(services.RegisterInput{
		Name: "Imposter", Email: "ADA@example.com", Password: "hunter22",
	})
	require.ErrorIs(t, err, services.ErrEmailTaken)

	_, token, err = svc.Login("ada@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, _, err = svc.Login("ada@example.com", "wrong")
	require.ErrorIs(t, err, services.ErrInvalidLogin)

	_, _, err = svc.Login("nobody@example.com", "secret123")
	require.ErrorIs(t, err, services.ErrInvalidLogin)
}

func TestProfile(t *testing.T) {
	testkit.NewDB(t, &models.User{})
	svc := services.NewAuthService()

	user, _, err := svc.Register(services.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	got, err := svc.Profile(user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, got.Email)

	_, err = svc.Profile(user.ID + 1)
	require.ErrorIs(t, err, services.ErrNotFound)
}
