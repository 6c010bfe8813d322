// Package blob содержит бэкенды блоб-хранилища: локальный диск, storage-узлы по HTTP и S3.
//
// Все бэкенды реализуют один контракт: Put возвращает фактический ключ объекта,
// который затем передаётся в Exists, Delete и Download без изменений.
package blob

import "errors"

var (
	// ErrNotFound: объекта с таким ключом нет.
	ErrNotFound = errors.New("blob not found")
	// ErrNoStorage: нет ни одного стораджа для записи.
	ErrNoStorage = errors.New("no storage ready")
)
