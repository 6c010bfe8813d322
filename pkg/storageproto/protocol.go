// Package storageproto описывает протокол HTTP-взаимодействия REST-сервиса со стораджами.
package storageproto

import (
	"fmt"
	"net/url"
	"strings"
)

// Параметры REST-протокола взаимодействия со стораджами.
const (
	ObjectsPath    = "/objects/"
	HealthPath     = "/health"
	GCPath         = "/admin/gc"
	HeaderChecksum = "X-Checksum-Sha256"
	HeaderSize     = "X-Size"
)

// ObjectURL строит адрес объекта на сторадже; сегменты ключа экранируются.
func ObjectURL(baseURL, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(baseURL, "/") + ObjectsPath + strings.Join(segments, "/")
}

// SplitObjectURL разбирает адрес объекта на базовый URL стораджа и ключ.
func SplitObjectURL(location string) (baseURL, key string, err error) {
	idx := strings.Index(location, ObjectsPath)
	if idx <= 0 {
		return "", "", fmt.Errorf("not a storage object url: %q", location)
	}

	key, err = url.PathUnescape(location[idx+len(ObjectsPath):])
	if err != nil {
		return "", "", fmt.Errorf("object key: %w", err)
	}
	if key == "" {
		return "", "", fmt.Errorf("empty object key in %q", location)
	}

	return location[:idx], key, nil
}
