package session

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUserNotFound — пользователь с таким именем или идентификатором не существует.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials — пароль не совпал с хэшем.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSubscriptionExpired — подписка обычного пользователя истекла.
	// Конкретная ошибка имеет тип *SubscriptionExpiredError.
	ErrSubscriptionExpired = errors.New("subscription expired")
	// ErrDuplicateUsername — имя пользователя уже занято.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrSelfDeletionForbidden — попытка удалить собственную учётную запись.
	ErrSelfDeletionForbidden = errors.New("cannot delete your own account")
	// ErrLastAdminProtected — попытка удалить последнего администратора.
	ErrLastAdminProtected = errors.New("cannot delete the last administrator")
	// ErrBackendUnavailable — бэкенд недоступен или ответил ошибкой.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrCorruptSnapshot — снимок сессии прочитан, но не разбирается. Возвращается
	// хранилищами снимков, чтобы отличить испорченную запись от временного сбоя чтения.
	ErrCorruptSnapshot = errors.New("corrupt session snapshot")
	// ErrAlreadyRestored — RestoreSession вызывается один раз за время жизни процесса.
	ErrAlreadyRestored = errors.New("session already restored")
)

// SubscriptionExpiredError возвращается из Login, когда подписка истекла.
// Содержит дату окончания для отображения пользователю.
type SubscriptionExpiredError struct {
	ExpiredDate time.Time
}

func (e *SubscriptionExpiredError) Error() string {
	return fmt.Sprintf("subscription expired on %s", e.ExpiredDate.Format(time.DateOnly))
}

// Is позволяет сравнивать ошибку с ErrSubscriptionExpired через errors.Is.
func (e *SubscriptionExpiredError) Is(target error) bool {
	return target == ErrSubscriptionExpired
}

func backendError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrBackendUnavailable, err)
}
