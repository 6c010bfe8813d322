// Package storagehttp реализует Storage API: HTTP-интерфейс стораджа, принимающего и
// выдающего объекты поверх локального диска. Основные эндпоинты:
//   - PUT /objects/{key}: принимает объект, проверяет размер/хеш, пишет через .incoming и rename.
//   - GET /objects/{key}: отдаёт сохранённый объект как application/octet-stream.
//   - HEAD /objects/{key}: возвращает размер и SHA-256 через служебные заголовки.
//   - DELETE /objects/{key}: удаляет объект вместе с метаданными, идемпотентно.
//   - POST /admin/gc: инициирует сбор брошенных загрузок (ручной GC).
//   - GET /health: отдаёт объём каталога данных для health-check'ов.
package storagehttp
