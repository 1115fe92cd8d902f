// internal/services/auth_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/store"
	"github.com/pantrypal/pantrypal-backend/internal/store/memstore"
	"github.com/pantrypal/pantrypal-backend/internal/utils"
)

func TestRegisterRetailer(t *testing.T) {
	st := memstore.New()
	svc := NewAuthService(st, 24)

	result, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Shop Owner",
		Phone:    "9111111111",
		Password: "secret1",
		Role:     "retailer",
		ShopName: "Corner Store",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, models.RoleRetailer, result.User.Role)
	assert.True(t, result.User.CheckPassword("secret1"))

	profile, err := st.GetRetailerProfileByUserID(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Corner Store", profile.ShopName)

	claims, err := utils.ValidateJWT(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.String(), claims.UserID)
	assert.Equal(t, "retailer", claims.Role)
}

func TestRegisterCustomerNeedsNoShop(t *testing.T) {
	st := memstore.New()
	svc := NewAuthService(st, 24)

	result, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Jordan",
		Phone:    "9222222222",
		Password: "secret1",
		Role:     "customer",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, result.User.Role)

	_, err = st.GetRetailerProfileByUserID(context.Background(), result.User.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRegisterValidation(t *testing.T) {
	st := memstore.New()
	svc := NewAuthService(st, 24)

	cases := []RegisterRequest{
		{Name: "X", Phone: "9333333333", Password: "secret1", Role: "retailer", ShopName: "S"},               // name too short
		{Name: "Valid Name", Phone: "12ab", Password: "secret1", Role: "customer"},                           // bad phone
		{Name: "Valid Name", Phone: "9333333333", Password: "short", Role: "customer"},                       // short password
		{Name: "Valid Name", Phone: "9333333333", Password: "secret1", Role: "admin"},                        // unknown role
		{Name: "Valid Name", Phone: "9333333333", Password: "secret1", Role: "retailer"},                     // missing shop
	}
	for i, req := range cases {
		_, err := svc.Register(context.Background(), &req)
		assert.ErrorIs(t, err, store.ErrInvalidInput, "case %d", i)
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	st := memstore.New()
	svc := NewAuthService(st, 24)

	req := &RegisterRequest{Name: "First User", Phone: "9444444444", Password: "secret1", Role: "customer"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &RegisterRequest{
		Name: "Second User", Phone: "9444444444", Password: "secret2", Role: "customer",
	})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestLogin(t *testing.T) {
	st := memstore.New()
	svc := NewAuthService(st, 24)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name: "Login User", Phone: "9555555555", Password: "secret1", Role: "customer",
	})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), &LoginRequest{Phone: "9555555555", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = svc.Login(context.Background(), &LoginRequest{Phone: "9555555555", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{Phone: "9000009999", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
