package models

import "time"

// Типы аренды аккаунта.
const (
	AccountTypeFull    = "full"
	AccountTypeProfile = "profile"
)

// Rental — запись об аренде аккаунта стримингового сервиса клиенту.
type Rental struct {
	ID              string        `json:"id"`
	RentalID        string        `json:"rental_id"` // Человекочитаемый номер вида R-0001
	UserID          string        `json:"user_id"`   // Владелец записи
	Platform        string        `json:"platform"`
	CustomerName    string        `json:"customer_name"`
	AccountType     string        `json:"account_type"`
	ProfileName     *string       `json:"profile_name,omitempty"`
	AccountEmail    string        `json:"account_email"`
	AccountPassword string        `json:"account_password"`
	Price           float64       `json:"price"`
	Duration        int           `json:"duration"` // Месяцы
	StartDate       time.Time     `json:"start_date"`
	ExpirationDate  time.Time     `json:"expiration_date"`
	Notes           *string       `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	Replacements    []Replacement `json:"replacements,omitempty"`
}

// DummyRental используется для приёма данных аренды из JSON-запроса.
// Дата начала приходит строкой в формате 2006-01-02.
type DummyRental struct {
	UserID          string  `json:"user_id,omitempty"`
	Platform        string  `json:"platform" validate:"required"`
	CustomerName    string  `json:"customer_name" validate:"required"`
	AccountType     string  `json:"account_type" validate:"omitempty,oneof=full profile"`
	ProfileName     *string `json:"profile_name"`
	AccountEmail    string  `json:"account_email" validate:"required,email"`
	AccountPassword string  `json:"account_password" validate:"required"`
	Price           float64 `json:"price" validate:"gte=0"`
	Duration        int     `json:"duration" validate:"required,gt=0"`
	StartDate       string  `json:"start_date" validate:"required"`
	Notes           *string `json:"notes"`
}

// Replacement — запись о замене учётных данных арендованного аккаунта.
type Replacement struct {
	ID          string    `json:"id"`
	RentalID    string    `json:"rental_id"`
	OldEmail    string    `json:"old_email"`
	OldPassword string    `json:"old_password"`
	NewEmail    string    `json:"new_email"`
	NewPassword string    `json:"new_password"`
	Reason      *string   `json:"reason,omitempty"`
	ReplacedAt  time.Time `json:"replaced_at"`
}

// DummyReplacement используется для приёма новых учётных данных из JSON-запроса.
type DummyReplacement struct {
	NewEmail    string  `json:"new_email" validate:"required,email"`
	NewPassword string  `json:"new_password" validate:"required"`
	Reason      *string `json:"reason"`
}
