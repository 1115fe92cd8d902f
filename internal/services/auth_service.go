// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pantrypal/pantrypal-backend/internal/models"
	"github.com/pantrypal/pantrypal-backend/internal/store"
	"github.com/pantrypal/pantrypal-backend/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid phone or password")

type AuthService struct {
	store       store.Store
	jwtTTLHours int
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
	ShopName string `json:"shop_name"`
}

type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func NewAuthService(store store.Store, jwtTTLHours int) *AuthService {
	return &AuthService{store: store, jwtTTLHours: jwtTTLHours}
}

// Register creates a user account. Retailers must supply a shop name; a
// retailer profile is created alongside the user.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", store.ErrInvalidInput, req.Role)
	}
	if role == models.RoleRetailer && req.ShopName == "" {
		return nil, fmt.Errorf("%w: shop_name is required for retailers", store.ErrInvalidInput)
	}

	user := &models.User{
		Name:  req.Name,
		Phone: req.Phone,
		Role:  role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%w: phone number already registered", store.ErrDuplicate)
		}
		return nil, err
	}

	if role == models.RoleRetailer {
		profile := &models.RetailerProfile{
			UserID:   user.ID,
			ShopName: req.ShopName,
		}
		if err := s.store.CreateRetailerProfile(ctx, profile); err != nil {
			return nil, err
		}
	}

	token, err := utils.GenerateJWT(user.ID, user.Name, string(user.Role), s.jwtTTLHours)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User registered")

	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}

	user, err := s.store.GetUserByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Name, string(user.Role), s.jwtTTLHours)
	if err != nil {
		return nil, err
	}

	logrus.WithField("user_id", user.ID).Info("User logged in")

	return &AuthResult{Token: token, User: user}, nil
}
