package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type sessionClaims struct {
	AccountID int `json:"account_id"`
	jwt.RegisteredClaims
}

// openSession signs a token for account and stores its hash.
func (uc *AuthUseCase) openSession(ctx context.Context, account *domain.Account, client ClientInfo) (*AuthResponse, error) {
	now := uc.now()
	expiresAt := now.Add(uc.tokenTTL)
	sessionID := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		AccountID: account.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	tokenString, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	session := &domain.Session{
		ID:         sessionID,
		AccountID:  account.ID,
		TokenHash:  hashToken(tokenString),
		DeviceInfo: client.DeviceInfo,
		IPAddress:  client.IPAddress,
		ExpiresAt:  expiresAt,
		CreatedAt:  now,
	}
	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		Token:     tokenString,
		ExpiresAt: expiresAt,
		Account:   account,
	}, nil
}

// VerifyToken checks the signature and expiry of token and that its session
// has not been revoked. It returns the account id.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, tokenString string) (int, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(uc.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(uc.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, domain.ErrSessionExpired
		}
		return 0, domain.ErrInvalidToken
	}
	if claims.AccountID <= 0 {
		return 0, domain.ErrInvalidToken
	}

	session, err := uc.sessions.GetByToken(ctx, hashToken(tokenString))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrInvalidToken
		}
		return 0, fmt.Errorf("failed to load session: %w", err)
	}
	if session.AccountID != claims.AccountID {
		return 0, domain.ErrInvalidToken
	}
	if session.ExpiredAt(uc.now()) {
		return 0, domain.ErrSessionExpired
	}

	return claims.AccountID, nil
}

// hashToken creates SHA256 hash of token for storage
func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
