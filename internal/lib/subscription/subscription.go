// Package subscription содержит чистые функции для работы с подписками:
// расчёт даты окончания, количества оставшихся дней и статуса подписки.
//
// Функции не выполняют ввод-вывод и принимают текущее время параметром,
// поэтому детерминированы и легко тестируются.
package subscription

import (
	"fmt"
	"math"
	"time"

	"github.com/magabrotheeeer/rental-tracker/internal/models"
)

const day = 24 * time.Hour

// Пороги классификации статуса подписки в днях.
const (
	CriticalDays = 7
	WarningDays  = 30
)

// Clock возвращает текущее время. Внедряется в сервисы для тестируемости.
type Clock interface {
	Now() time.Time
}

// SystemClock — часы на основе системного времени (UTC).
type SystemClock struct{}

// Now возвращает текущее время в UTC.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// CalculateEndDate прибавляет к дате начала указанное количество календарных месяцев.
//
// Используется нормализация time.AddDate: если в целевом месяце нет нужного дня,
// лишние дни переносятся в следующий месяц (31.01.2024 + 1 месяц = 02.03.2024).
func CalculateEndDate(start time.Time, durationMonths int) time.Time {
	return start.AddDate(0, durationMonths, 0)
}

// DaysRemaining возвращает количество дней до окончания подписки,
// округлённое вверх. Значение может быть нулевым или отрицательным.
func DaysRemaining(end, now time.Time) int {
	diff := end.Sub(now)
	return int(math.Ceil(float64(diff) / float64(day)))
}

// IsActive сообщает, активна ли подписка. Момент окончания уже считается истёкшим.
func IsActive(end *time.Time, now time.Time) bool {
	if end == nil {
		return false
	}
	return end.After(now)
}

// IsExpired — правило допуска при входе: подписка истекла, если end <= now.
// Отсутствующая дата окончания не блокирует вход.
func IsExpired(end *time.Time, now time.Time) bool {
	if end == nil {
		return false
	}
	return !end.After(now)
}

// Status классифицирует подписку по дате окончания для отображения.
func Status(end *time.Time, now time.Time) models.SubscriptionStatus {
	if end == nil {
		return models.SubscriptionStatus{
			State:   models.SubscriptionExpired,
			Color:   "red",
			Message: "no subscription",
		}
	}

	days := DaysRemaining(*end, now)
	switch {
	// Округление вверх даёт 0 для уже прошедшей даты в пределах суток,
	// поэтому прошедшая дата проверяется отдельно.
	case days < 0 || end.Before(now):
		return models.SubscriptionStatus{
			State:         models.SubscriptionExpired,
			DaysRemaining: days,
			Color:         "red",
			Message:       "subscription expired",
		}
	case days <= CriticalDays:
		return models.SubscriptionStatus{
			State:         models.SubscriptionCritical,
			DaysRemaining: days,
			Color:         "red",
			Message:       fmt.Sprintf("expires in %d %s", days, plural(days, "day", "days")),
		}
	case days <= WarningDays:
		return models.SubscriptionStatus{
			State:         models.SubscriptionWarning,
			DaysRemaining: days,
			Color:         "orange",
			Message:       fmt.Sprintf("%d days remaining", days),
		}
	default:
		return models.SubscriptionStatus{
			State:         models.SubscriptionActive,
			DaysRemaining: days,
			Color:         "green",
			Message:       fmt.Sprintf("%d days remaining", days),
		}
	}
}

// DurationOptions возвращает допустимые варианты длительности подписки.
func DurationOptions() []models.DurationOption {
	return []models.DurationOption{
		{Months: 1, Label: "1 month"},
		{Months: 3, Label: "3 months"},
		{Months: 6, Label: "6 months"},
		{Months: 12, Label: "1 year"},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
