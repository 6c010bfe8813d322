// Package httperrors переводит ошибки операций над файлами в HTTP-ответы.
package httperrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sir_venger/filekeeper/internal/models"
)

const internalMessage = "Internal Server Error"

// Status возвращает HTTP-код для ошибки по её виду.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Message возвращает публичное сообщение. Причина ошибки клиенту не отдаётся.
func Message(err error) string {
	var op *models.OpError
	if errors.As(err, &op) && op.Message != "" {
		return op.Message
	}
	return internalMessage
}

// Write пишет ошибку в виде JSON-массива сообщений: ["File not found."].
func Write(w http.ResponseWriter, err error) {
	WriteMessages(w, Status(err), Message(err))
}

func WriteMessages(w http.ResponseWriter, status int, messages ...string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(messages)
}
