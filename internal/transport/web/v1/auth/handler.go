package auth

import (
	"log"

	"github.com/EgorLis/med-vault/internal/authgate"
)

type Handler struct {
	Log  *log.Logger
	Gate *authgate.Gateway
}
