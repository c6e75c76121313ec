package models

// Состояния подписки, вычисляемые по дате окончания.
const (
	SubscriptionActive   = "active"
	SubscriptionWarning  = "warning"
	SubscriptionCritical = "critical"
	SubscriptionExpired  = "expired"
)

// SubscriptionStatus — вычисляемый статус подписки. Никогда не сохраняется.
type SubscriptionStatus struct {
	State         string `json:"state"`
	DaysRemaining int    `json:"days_remaining"`
	Message       string `json:"message"`
	Color         string `json:"color"`
}

// DurationOption — вариант длительности подписки для выбора администратором.
type DurationOption struct {
	Months int    `json:"months"`
	Label  string `json:"label"`
}
