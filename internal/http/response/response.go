// Package response формирует JSON-конверт {status, error, data}, общий для всех
// обработчиков API. Тот же конверт разбирает HTTP-клиент бэкенда.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Значения поля status.
const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// Response — конверт ответа API. Data заполняется при успехе, Error при ошибке.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// OKWithData возвращает успешный ответ с данными.
func OKWithData(data any) Response {
	return Response{Status: StatusOK, Data: data}
}

// Error возвращает ответ с текстом ошибки.
func Error(msg string) Response {
	return Response{Status: StatusError, Error: msg}
}

// ValidationError собирает все нарушения валидации в одну строку через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return Error(strings.Join(msgs, ", "))
}

func fieldMessage(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("field %s is a required field", field)
	case "oneof":
		return fmt.Sprintf("field %s must be one of: %s", field, param)
	case "gte", "min":
		return fmt.Sprintf("field %s must be at least %s", field, param)
	case "gt":
		return fmt.Sprintf("field %s must be greater than %s", field, param)
	case "email":
		return fmt.Sprintf("field %s must be a valid email", field)
	default:
		return fmt.Sprintf("field %s is not valid", field)
	}
}
