package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrBadParams        = errors.New("bad_params")         // 400: валидация, недопустимый тип, превышен размер
	ErrUnauth           = errors.New("unauthorized")       // 401: нет/просрочен/битый токен, неверные логин-пароль
	ErrDuplicate        = errors.New("duplicate_identity") // 400: email уже зарегистрирован
	ErrNotFound         = errors.New("not_found")          // 404: нет записи ИЛИ чужая — наружу одинаково
	ErrBlobMissing      = errors.New("blob_missing")       // 500: метаданные есть, объекта нет (нарушение целостности)
	ErrStorage          = errors.New("storage_failure")    // 500: I/O ошибка блоб-хранилища
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrUnexpected       = errors.New("unexpected")         // 500
)

// Коды ошибок для конверта ответа
const (
	ErrCodeBadParams        = 1000
	ErrCodeUnauth           = 1001
	ErrCodeDuplicate        = 1002
	ErrCodeNotFound         = 1004
	ErrCodeMethodNotAllowed = 1005
	ErrCodeBlobMissing      = 1006
	ErrCodeStorage          = 1007
	ErrCodeUnexpected       = 1500
)
