package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/joedomabylv/QuickSched/internal/config"
	"github.com/joedomabylv/QuickSched/internal/model"
	"github.com/joedomabylv/QuickSched/internal/repository"
)

// Common auth errors.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims extends JWT standard claims with the operator identity.
type Claims struct {
	jwt.RegisteredClaims
	OperatorID int    `json:"operator_id"`
	Name       string `json:"name"`
}

// AuthService handles operator authentication and JWT issuance.
type AuthService struct {
	cfg          *config.Config
	operatorRepo *repository.OperatorRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, operatorRepo *repository.OperatorRepository) *AuthService {
	return &AuthService{cfg: cfg, operatorRepo: operatorRepo}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login verifies credentials and returns the operator with a signed token.
// Unknown emails and wrong passwords both map to ErrInvalidCredentials so
// the response does not reveal which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Operator, string, error) {
	operator, err := s.operatorRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := s.CheckPassword(operator.PasswordHash, password); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(operator)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return operator, token, nil
}

// GenerateToken creates a JWT for an operator.
func (s *AuthService) GenerateToken(operator *model.Operator) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(operator.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		OperatorID: operator.ID,
		Name:       operator.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// GetOperator loads an operator profile by ID.
func (s *AuthService) GetOperator(ctx context.Context, id int) (*model.Operator, error) {
	operator, err := s.operatorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get operator: %w", err)
	}
	return operator, nil
}
