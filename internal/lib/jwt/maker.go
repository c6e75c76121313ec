package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnknownRole возвращается при выпуске или разборе ключа с неизвестной ролью.
var ErrUnknownRole = errors.New("unknown api key role")

// CustomClaims описывает данные, хранящиеся в API-ключе.
type CustomClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken выпускает API-ключ для роли, подписывая его секретным ключом.
func (j *MakerImpl) GenerateToken(role string) (string, error) {
	const op = "jwt.GenerateToken"
	if !knownRole(role) {
		return "", fmt.Errorf("%s: %w: %q", op, ErrUnknownRole, role)
	}

	now := time.Now()
	claims := CustomClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   Issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if j.tokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.tokenTTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken разбирает API-ключ, проверяет подпись, издателя и роль.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	if !knownRole(claims.Role) {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownRole, claims.Role)
	}
	return claims, nil
}

func knownRole(role string) bool {
	return role == RoleAnon || role == RoleService
}
