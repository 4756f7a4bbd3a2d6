package domain

import (
	"net/http"
	"strings"
)

// DetectMIME определяет реальный формат по первым байтам содержимого.
// Заявленному клиентом Content-Type и расширению имени не доверяем.
func DetectMIME(content []byte) string {
	head := content
	if len(head) > 512 {
		head = head[:512]
	}
	mime := http.DetectContentType(head)
	// отрезаем параметры вида "; charset=utf-8"
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return strings.TrimSpace(mime)
}
