package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"github.com/bridgetunes/draw-console-backend/internal/config"
	"github.com/bridgetunes/draw-console-backend/internal/models"
	"github.com/bridgetunes/draw-console-backend/internal/repositories"
)

// ErrInvalidCredentials is returned for any login failure; the cause is
// deliberately not distinguished to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService defines the interface for console authentication
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	SeedAdmin(ctx context.Context) error
}

type authService struct {
	adminRepo repositories.AdminUserRepository
	cfg       *config.Config
}

// NewAuthService creates a new AuthService implementation
func NewAuthService(adminRepo repositories.AdminUserRepository, cfg *config.Config) AuthService {
	return &authService{
		adminRepo: adminRepo,
		cfg:       cfg,
	}
}

// Login authenticates a staff account and returns a signed JWT
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(time.Second * time.Duration(s.cfg.JWT.ExpiresIn)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		slog.Error("Failed to sign JWT", "error", err)
		return "", errors.New("failed to generate token")
	}

	return tokenString, nil
}

// SeedAdmin creates the configured seed admin account if the collection is
// still empty. A blank seed configuration skips seeding.
func (s *authService) SeedAdmin(ctx context.Context) error {
	if s.cfg.Admin.SeedEmail == "" || s.cfg.Admin.SeedPassword == "" {
		return nil
	}

	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Admin.SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.AdminUser{
		Email:    s.cfg.Admin.SeedEmail,
		Password: string(hashed),
		Role:     "admin",
	}
	if err := s.adminRepo.Create(ctx, user); err != nil {
		return err
	}
	slog.Info("Seeded initial admin user", "email", user.Email)
	return nil
}
