package files

import (
	"log"

	"github.com/EgorLis/med-vault/internal/vault"
)

type Handler struct {
	Log   *log.Logger
	Vault *vault.Vault
}
