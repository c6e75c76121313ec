// Package jwt реализует выпуск и проверку API-ключей бэкенда в виде JWT.
//
// Ключ подписывается общим секретом сервера и несёт роль клиента
// (anon или service_role). Клиент передаёт ключ в заголовке Authorization.
package jwt

import (
	"time"
)

// Роли API-ключей.
const (
	RoleAnon    = "anon"
	RoleService = "service_role"
)

// Issuer — значение поля iss для всех выпускаемых ключей.
const Issuer = "rental-tracker"

// Maker описывает выпуск и разбор API-ключей.
type Maker interface {
	// GenerateToken выпускает ключ для указанной роли.
	GenerateToken(role string) (string, error)
	// ParseToken проверяет подпись и срок действия ключа.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker с секретом HS256 и временем жизни ключа.
// Нулевое время жизни означает бессрочный ключ.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
