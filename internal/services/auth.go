package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/marberan/tastemix/internal/config"
	"github.com/marberan/tastemix/pkg/models"
)

type AuthService struct {
	config    *config.Config
	logger    *logrus.Logger
	jwtSecret []byte
	apiKeys   map[string]string
}

func NewAuthService(cfg *config.Config, logger *logrus.Logger) *AuthService {
	apiKeys := make(map[string]string, len(cfg.Auth.APIKeys))
	for tier, key := range cfg.Auth.APIKeys {
		apiKeys[key] = tier
	}
	return &AuthService{
		config:    cfg,
		logger:    logger,
		jwtSecret: []byte(cfg.Auth.JWTSecret),
		apiKeys:   apiKeys,
	}
}

func (s *AuthService) GenerateToken(userID, apiKey, userTier string) (string, error) {
	now := time.Now()
	claims := &models.JWTClaims{
		UserID:   userID,
		APIKey:   apiKey,
		UserTier: userTier,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Auth.TokenTTL)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "github.com/marberan/tastemix",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// ValidateAPIKey maps a configured API key to its tier.
func (s *AuthService) ValidateAPIKey(apiKey string) (string, error) {
	if tier, exists := s.apiKeys[apiKey]; exists {
		return tier, nil
	}
	return "", fmt.Errorf("invalid API key")
}
