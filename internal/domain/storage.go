package domain

import (
	"context"
	"io"
)

// Хранилище бинарного контента (S3/MinIO).
// Ключи всегда генерирует vault — хранилище их только принимает.
type BlobStorage interface {
	Ping(ctx context.Context) error
	// Put записывает объект под заданным ключом.
	Put(ctx context.Context, key string, r io.Reader, size int64, mime string) error
	// Get открывает поток на чтение. Отсутствующий объект — ErrBlobMissing.
	Get(ctx context.Context, key string) (io.ReadCloser, int64, error)
	// Delete идемпотентен: отсутствующий объект — не ошибка.
	Delete(ctx context.Context, key string) error
}
