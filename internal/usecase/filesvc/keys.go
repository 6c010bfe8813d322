package filesvc

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

const fallbackName = "file"

// newKey строит ключ объекта вида prefix/<uuid>/<имя>. UUID новый на каждую запись,
// поэтому одинаковые имена файлов не конфликтуют.
func newKey(prefix, name string) string {
	parts := make([]string, 0, 3)
	if p := strings.Trim(prefix, "/"); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, uuid.NewString(), sanitizeName(name))
	return strings.Join(parts, "/")
}

// sanitizeName оставляет от имени только последний сегмент без управляющих символов.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))

	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)

	switch name {
	case "", ".", "..", "/":
		return fallbackName
	}
	return name
}
