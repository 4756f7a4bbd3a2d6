package domain

import (
	"regexp"
	"strings"
)

// Лимиты загрузки — фиксированные, не конфигурируемые.
const (
	MaxFileSize  = 10 << 20 // 10 MiB на медицинский документ
	MaxImageSize = 5 << 20  // 5 MiB на аватарку профиля
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9\-\s()]{6,20}$`)
)

func ValidEmail(s string) bool {
	return len(s) <= 100 && emailRe.MatchString(s)
}

// NormalizeEmail — уникальность email регистронезависимая,
// поэтому храним и сравниваем в нижнем регистре.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func ValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// Пароль: минимум 8 символов. Более строгие правила — на усмотрение фронта.
func ValidPassword(s string) bool {
	return len(s) >= 8
}

func ValidGender(s string) bool {
	switch s {
	case "male", "female", "other":
		return true
	default:
		return false
	}
}

// Допустимые бинарные форматы документов. Проверяется содержимое,
// а не имя файла или заявленный клиентом Content-Type.
var allowedDocMIME = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

var allowedImageMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// ExtForDocMIME возвращает расширение для допустимого MIME документа.
func ExtForDocMIME(mime string) (string, bool) {
	ext, ok := allowedDocMIME[mime]
	return ext, ok
}

// ExtForImageMIME — то же для аватарок (только изображения).
func ExtForImageMIME(mime string) (string, bool) {
	ext, ok := allowedImageMIME[mime]
	return ext, ok
}

// MIMEForExt — фиксированная таблица для отдачи контента.
func MIMEForExt(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "pdf":
		return "application/pdf"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
