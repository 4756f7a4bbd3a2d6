package domain

import (
	"time"

	"github.com/google/uuid"
)

// Базовые идентификаторы
type UserID = uuid.UUID
type FileID = uuid.UUID

// Владелец файлов (пациент)
type User struct {
	ID        UserID    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"` // хранится в нижнем регистре
	Gender    string    `json:"gender"`
	Phone     string    `json:"phone"`
	PassHash  string    `json:"-"` // argon2id, никогда не отдаём наружу
	ImageKey  string    `json:"-"` // storage key аватарки (может быть пустым)
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Публичный профиль — то, что уходит клиенту (без хэша и storage key)
type Profile struct {
	ID       UserID `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Gender   string `json:"gender"`
	Phone    string `json:"phone"`
	HasImage bool   `json:"has_image"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Gender:   u.Gender,
		Phone:    u.Phone,
		HasImage: u.ImageKey != "",
	}
}

// Клиническая категория документа. Не путать с бинарным форматом (MIME):
// категория — что это за документ, MIME — как он закодирован.
type FileCategory string

const (
	CategoryLabReport    FileCategory = "Lab Report"
	CategoryPrescription FileCategory = "Prescription"
	CategoryXRay         FileCategory = "X-Ray"
	CategoryBloodReport  FileCategory = "Blood Report"
	CategoryMRIScan      FileCategory = "MRI Scan"
	CategoryCTScan       FileCategory = "CT Scan"
	CategoryOther        FileCategory = "Other"
)

// NormalizeCategory приводит произвольную строку к известной категории,
// неизвестное — в Other.
func NormalizeCategory(s string) FileCategory {
	switch FileCategory(s) {
	case CategoryLabReport, CategoryPrescription, CategoryXRay,
		CategoryBloodReport, CategoryMRIScan, CategoryCTScan:
		return FileCategory(s)
	default:
		return CategoryOther
	}
}

// Метаданные загруженного документа (без тела файла).
// Запись неизменяема после создания: только insert и delete.
type MedicalFile struct {
	ID         FileID       `json:"id"`
	OwnerID    UserID       `json:"owner_id"`
	Name       string       `json:"name"`     // отображаемое имя, задаёт владелец
	Category   FileCategory `json:"category"` // клиническая категория
	MIME       string       `json:"mime"`     // реальный формат, определён по содержимому
	SizeBytes  int64        `json:"size_bytes"`
	StorageKey string       `json:"-"` // всегда генерируется хранилищем, не из ввода
	UploadedAt time.Time    `json:"uploaded_at"`
}
