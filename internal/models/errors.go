package models

import "errors"

var (
	ErrNotFound    = errors.New("file not found")
	ErrValidation  = errors.New("validation failed")
	ErrTooLarge    = errors.New("upload too large")
	ErrStorage     = errors.New("blob storage failure")
	ErrPersistence = errors.New("record persistence failure")
)

// OpError: ошибка операции над файлом: вид (один из Err*), публичное сообщение
// для клиента и исходная причина, которая в ответ не попадает.
type OpError struct {
	Kind    error
	Message string
	Err     error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap позволяет errors.Is сопоставлять как вид ошибки, так и причину.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Invalid создаёт ошибку валидации входных данных.
func Invalid(msg string) error {
	return &OpError{Kind: ErrValidation, Message: msg}
}

// NotFound оборачивает отсутствие записи.
func NotFound(err error) error {
	return &OpError{Kind: ErrNotFound, Message: "File not found.", Err: err}
}

// StorageFailure оборачивает сбой блоб-хранилища.
func StorageFailure(msg string, err error) error {
	return &OpError{Kind: ErrStorage, Message: msg, Err: err}
}

// PersistenceFailure оборачивает сбой хранилища записей.
func PersistenceFailure(msg string, err error) error {
	return &OpError{Kind: ErrPersistence, Message: msg, Err: err}
}

// TooLarge оборачивает превышение лимита на размер тела запроса.
func TooLarge(err error) error {
	return &OpError{Kind: ErrTooLarge, Message: "The file is too large.", Err: err}
}
