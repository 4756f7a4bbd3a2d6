package domain

import (
	"context"
)

// Репозитории — чистый доступ к данным, без бизнес-правил.
// Вся валидация и порядок операций живут в authgate и vault.

type UsersRepo interface {
	Close()
	Ping(context.Context) error
	CreateUser(ctx context.Context, u User) (User, error)
	UserByEmail(ctx context.Context, email string) (User, error)
	UserByID(ctx context.Context, id UserID) (User, error)
	// UpdateUser перезаписывает email/gender/phone/image_key и updated_at.
	UpdateUser(ctx context.Context, u User) (User, error)
}

type FilesRepo interface {
	CreateFile(ctx context.Context, f MedicalFile) (MedicalFile, error)
	// FileByID возвращает запись только если она принадлежит owner.
	// Чужая и отсутствующая запись неразличимы: обе — ErrNotFound.
	FileByID(ctx context.Context, id FileID, owner UserID) (MedicalFile, error)
	// FilesByOwner — список владельца, новые сверху (uploaded_at DESC).
	FilesByOwner(ctx context.Context, owner UserID) ([]MedicalFile, error)
	// DeleteFile удаляет запись владельца; 0 строк — ErrNotFound.
	DeleteFile(ctx context.Context, id FileID, owner UserID) error
}
