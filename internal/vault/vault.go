// Package vault — ядро файлового хранилища: валидация загрузок, размещение
// блобов в пер-владельческих неймспейсах, согласованность метаданных и блобов,
// проверка владения на каждом чтении/удалении.
package vault

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"

	"github.com/google/uuid"

	"github.com/EgorLis/med-vault/internal/domain"
)

const keyPrefix = "medical-files"

type Vault struct {
	log   *log.Logger
	files domain.FilesRepo
	blobs domain.BlobStorage
}

func New(logger *log.Logger, files domain.FilesRepo, blobs domain.BlobStorage) *Vault {
	return &Vault{log: logger, files: files, blobs: blobs}
}

// Upload проверяет содержимое и кладёт документ.
// Порядок проверок фиксирован: пустой файл → формат → размер; первая
// нарушенная — и есть ошибка. Ключ генерируется всегда (uuid + реальное
// расширение), имя от пользователя в путь не попадает.
//
// Сначала пишется блоб, затем вставляются метаданные. Если вставка упала,
// осиротевший блоб убирается сразу же: инвариант «у каждой строки есть блоб
// и наоборот» чинится синхронно, а не когда-нибудь.
func (v *Vault) Upload(ctx context.Context, owner domain.UserID, name string, category string, content []byte) (domain.MedicalFile, error) {
	if len(content) == 0 {
		return domain.MedicalFile{}, fmt.Errorf("empty file: %w", domain.ErrBadParams)
	}

	mime := domain.DetectMIME(content)
	ext, ok := domain.ExtForDocMIME(mime)
	if !ok {
		return domain.MedicalFile{}, fmt.Errorf("unsupported content type %q: %w", mime, domain.ErrBadParams)
	}

	if int64(len(content)) > domain.MaxFileSize {
		return domain.MedicalFile{}, fmt.Errorf("file exceeds %d bytes: %w", int64(domain.MaxFileSize), domain.ErrBadParams)
	}

	key := path.Join(keyPrefix, owner.String(), uuid.NewString()+ext)

	if err := v.blobs.Put(ctx, key, bytes.NewReader(content), int64(len(content)), mime); err != nil {
		v.log.Printf("upload put %s: %v", key, err)
		return domain.MedicalFile{}, fmt.Errorf("blob put: %w", domain.ErrStorage)
	}

	f, err := v.files.CreateFile(ctx, domain.MedicalFile{
		OwnerID:    owner,
		Name:       name,
		Category:   domain.NormalizeCategory(category),
		MIME:       mime,
		SizeBytes:  int64(len(content)),
		StorageKey: key,
	})
	if err != nil {
		// метаданные не записались — блоб не должен остаться
		if delErr := v.blobs.Delete(ctx, key); delErr != nil {
			v.log.Printf("orphan cleanup %s failed: %v", key, delErr)
		}
		v.log.Printf("upload meta insert: %v", err)
		return domain.MedicalFile{}, fmt.Errorf("meta insert: %w", domain.ErrStorage)
	}

	return f, nil
}

// List — файлы владельца, новые сверху. Пересчитывается на каждый вызов,
// никакого кеша.
func (v *Vault) List(ctx context.Context, owner domain.UserID) ([]domain.MedicalFile, error) {
	return v.files.FilesByOwner(ctx, owner)
}

// Delete удаляет документ владельца. Источник истины — метаданные:
// сначала уходит строка, затем блоб (best-effort, отсутствие блоба — не ошибка).
// Чужой и несуществующий id наружу неразличимы — оба ErrNotFound.
func (v *Vault) Delete(ctx context.Context, owner domain.UserID, id domain.FileID) error {
	f, err := v.files.FileByID(ctx, id, owner)
	if err != nil {
		return err
	}

	if err := v.files.DeleteFile(ctx, id, owner); err != nil {
		// параллельное удаление могло успеть раньше — это тоже ErrNotFound
		return err
	}

	if err := v.blobs.Delete(ctx, f.StorageKey); err != nil {
		v.log.Printf("blob delete %s: %v", f.StorageKey, err)
	}
	return nil
}

// Open разрешает скачивание: проверка владения, затем поток из хранилища.
// Строка есть, а блоба нет — отдельная ошибка ErrBlobMissing (нарушение
// целостности, для алертинга), не обычный NotFound.
func (v *Vault) Open(ctx context.Context, owner domain.UserID, id domain.FileID) (domain.MedicalFile, io.ReadCloser, error) {
	f, err := v.files.FileByID(ctx, id, owner)
	if err != nil {
		return domain.MedicalFile{}, nil, err
	}

	rc, _, err := v.blobs.Get(ctx, f.StorageKey)
	if err != nil {
		if errors.Is(err, domain.ErrBlobMissing) {
			v.log.Printf("integrity: meta %s without blob %s", f.ID, f.StorageKey)
			return domain.MedicalFile{}, nil, fmt.Errorf("file %s: %w", f.ID, domain.ErrBlobMissing)
		}
		return domain.MedicalFile{}, nil, fmt.Errorf("blob get: %w", domain.ErrStorage)
	}
	return f, rc, nil
}
