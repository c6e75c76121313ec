package models

import "time"

// Session — закэшированная на клиенте проекция пользователя.
// Хранится в локальном снимке и может устареть относительно бэкенда.
type Session struct {
	UserID              string     `json:"userId"`
	Username            string     `json:"username"`
	FullName            string     `json:"fullName"`
	Role                string     `json:"role"`
	Currency            string     `json:"currency"`
	SubscriptionEndDate *time.Time `json:"subscriptionEndDate"`
}

// SessionFromUser строит снимок сессии из записи пользователя.
func SessionFromUser(u *User) Session {
	currency := u.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	return Session{
		UserID:              u.ID,
		Username:            u.Username,
		FullName:            u.FullName,
		Role:                u.Role,
		Currency:            currency,
		SubscriptionEndDate: u.SubscriptionEndDate,
	}
}
