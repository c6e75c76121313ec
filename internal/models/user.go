// Package models содержит доменные модели приложения: пользователей,
// клиентские сессии, аренды аккаунтов и историю замены учётных данных.
// Структуры используются в бизнес‑логике, хранилище и при передаче по HTTP.
package models

import "time"

// Роли пользователей.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DefaultCurrency используется, если валюта пользователя не задана.
const DefaultCurrency = "$"

// User представляет учётную запись системы вместе с данными подписки.
type User struct {
	ID                         string     `json:"id"`                                            // Уникальный идентификатор, неизменяемый
	Username                   string     `json:"username" validate:"required"`                  // Имя пользователя (уникальное, с учётом регистра)
	FullName                   string     `json:"full_name"`                                     // Полное имя
	Role                       string     `json:"role" validate:"omitempty,oneof=admin user"`    // admin или user
	Currency                   string     `json:"currency"`                                      // Символ валюты для отображения
	PasswordHash               string     `json:"password_hash"`                                 // bcrypt-хэш пароля
	SubscriptionStartDate      *time.Time `json:"subscription_start_date"`                       // Начало подписки
	SubscriptionDurationMonths int        `json:"subscription_duration_months" validate:"gte=0"` // Длительность подписки в месяцах
	SubscriptionEndDate        *time.Time `json:"subscription_end_date"`                         // Вычисляется из начала и длительности
	CreatedAt                  time.Time  `json:"created_at"`
}

// IsAdmin сообщает, является ли пользователь администратором.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
