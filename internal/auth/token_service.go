package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"skyward-mro/shopfloor/internal/constants"
)

// TokenService issues and validates HMAC-signed bearer tokens for the
// dashboard clients.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
}

func NewTokenService(secretKey []byte, ttl time.Duration) *TokenService {
	if ttl == 0 {
		ttl = 12 * time.Hour
	}
	return &TokenService{secretKey: secretKey, ttl: ttl}
}

// IssueToken signs a token carrying the user's identity and role.
func (s *TokenService) IssueToken(userID, name string, role constants.ShopRole) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.ttl)

	claims := jwt.MapClaims{
		"user_id": userID,
		"name":    name,
		"role":    string(role),
		"jti":     uuid.New().String(),
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken parses the token and returns the embedded claims.
func (s *TokenService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, ok := (*claims)["user_id"].(string)
	if !ok {
		return nil, errors.New("missing or invalid user_id claim")
	}

	name, ok := (*claims)["name"].(string)
	if !ok {
		return nil, errors.New("missing or invalid name claim")
	}

	roleStr, ok := (*claims)["role"].(string)
	if !ok {
		return nil, errors.New("missing or invalid role claim")
	}
	role := constants.ShopRole(roleStr)
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", roleStr)
	}

	expFloat, ok := (*claims)["exp"].(float64)
	if !ok {
		return nil, errors.New("missing or invalid exp claim")
	}
	if time.Now().After(time.Unix(int64(expFloat), 0)) {
		return nil, errors.New("token expired")
	}

	return &JWTClaims{
		UserUUID:  userID,
		NameValue: name,
		RoleValue: role,
	}, nil
}
