// Package authgate — оркестрация регистрации, входа и профиля поверх
// UsersRepo + TokenManager. Единственное место, где живут пароли и их хэши;
// дальше по системе ходит только проверенный UserID из токена.
package authgate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path"

	"github.com/google/uuid"

	"github.com/EgorLis/med-vault/internal/domain"
)

const imageKeyPrefix = "profiles"

type Gateway struct {
	log       *log.Logger
	users     domain.UsersRepo
	hasher    domain.PasswordHasher
	tokens    domain.TokenManager
	blacklist domain.TokenBlacklist
	blobs     domain.BlobStorage
}

func New(logger *log.Logger, users domain.UsersRepo, hasher domain.PasswordHasher,
	tokens domain.TokenManager, blacklist domain.TokenBlacklist, blobs domain.BlobStorage) *Gateway {
	return &Gateway{
		log:       logger,
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		blacklist: blacklist,
		blobs:     blobs,
	}
}

type SignupInput struct {
	FullName string
	Email    string
	Gender   string
	Phone    string
	Password string
}

// Signup регистрирует владельца. Email уникален регистронезависимо —
// нормализуем до вставки, конфликт приходит из репозитория как ErrDuplicate.
// Пароль хэшируется до записи, открытым не хранится и не логируется.
func (g *Gateway) Signup(ctx context.Context, in SignupInput) (domain.Token, domain.Profile, error) {
	if in.FullName == "" || !domain.ValidEmail(in.Email) ||
		!domain.ValidGender(in.Gender) || !domain.ValidPhone(in.Phone) ||
		!domain.ValidPassword(in.Password) {
		return "", domain.Profile{}, domain.ErrBadParams
	}

	hash, err := g.hasher.Hash(in.Password)
	if err != nil {
		return "", domain.Profile{}, fmt.Errorf("hash: %w", err)
	}

	u, err := g.users.CreateUser(ctx, domain.User{
		FullName: in.FullName,
		Email:    domain.NormalizeEmail(in.Email),
		Gender:   in.Gender,
		Phone:    in.Phone,
		PassHash: hash,
	})
	if err != nil {
		return "", domain.Profile{}, err
	}

	tok, _, err := g.tokens.Issue(ctx, u.ID)
	if err != nil {
		return "", domain.Profile{}, fmt.Errorf("issue token: %w", err)
	}
	return tok, u.Profile(), nil
}

// Login проверяет пару email/пароль. Неизвестный email и неверный пароль
// наружу неразличимы: оба — ErrUnauth, чтобы нельзя было перебирать адреса.
func (g *Gateway) Login(ctx context.Context, email, password string) (domain.Token, domain.Profile, error) {
	u, err := g.users.UserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.Profile{}, domain.ErrUnauth
		}
		return "", domain.Profile{}, err
	}

	ok, err := g.hasher.Verify(password, u.PassHash)
	if err != nil || !ok {
		return "", domain.Profile{}, domain.ErrUnauth
	}

	tok, _, err := g.tokens.Issue(ctx, u.ID)
	if err != nil {
		return "", domain.Profile{}, fmt.Errorf("issue token: %w", err)
	}
	return tok, u.Profile(), nil
}

// CurrentUser — профиль по проверенному UserID из токена.
// Валидный токен с исчезнувшим владельцем — ErrNotFound, не ErrUnauth.
func (g *Gateway) CurrentUser(ctx context.Context, id domain.UserID) (domain.Profile, error) {
	u, err := g.users.UserByID(ctx, id)
	if err != nil {
		return domain.Profile{}, err
	}
	return u.Profile(), nil
}

// UpdateProfile меняет email/gender/phone и, опционально, аватарку.
// Порядок при замене картинки жёсткий: записать новую → закоммитить профиль →
// удалить старую. Никогда наоборот — упавший посередине процесс не должен
// оставить профиль, указывающий в пустоту.
func (g *Gateway) UpdateProfile(ctx context.Context, id domain.UserID, email, gender, phone string, image []byte) (domain.Profile, error) {
	if !domain.ValidEmail(email) || !domain.ValidGender(gender) || !domain.ValidPhone(phone) {
		return domain.Profile{}, domain.ErrBadParams
	}

	u, err := g.users.UserByID(ctx, id)
	if err != nil {
		return domain.Profile{}, err
	}

	oldKey := u.ImageKey
	newKey := ""
	if len(image) > 0 {
		newKey, err = g.putImage(ctx, id, image)
		if err != nil {
			return domain.Profile{}, err
		}
		u.ImageKey = newKey
	}

	u.Email = domain.NormalizeEmail(email)
	u.Gender = gender
	u.Phone = phone

	updated, err := g.users.UpdateUser(ctx, u)
	if err != nil {
		// профиль не закоммитился — свежезаписанная картинка осиротела, убираем её
		if newKey != "" {
			if delErr := g.blobs.Delete(ctx, newKey); delErr != nil {
				g.log.Printf("orphan image cleanup %s failed: %v", newKey, delErr)
			}
		}
		return domain.Profile{}, err
	}

	// только после успешного коммита можно трогать старую картинку
	if newKey != "" && oldKey != "" {
		if err := g.blobs.Delete(ctx, oldKey); err != nil {
			g.log.Printf("old image delete %s: %v", oldKey, err)
		}
	}
	return updated.Profile(), nil
}

// putImage валидирует и кладёт аватарку в пер-владельческий неймспейс.
func (g *Gateway) putImage(ctx context.Context, id domain.UserID, image []byte) (string, error) {
	mime := domain.DetectMIME(image)
	ext, ok := domain.ExtForImageMIME(mime)
	if !ok {
		return "", fmt.Errorf("unsupported image type %q: %w", mime, domain.ErrBadParams)
	}
	if int64(len(image)) > domain.MaxImageSize {
		return "", fmt.Errorf("image exceeds %d bytes: %w", int64(domain.MaxImageSize), domain.ErrBadParams)
	}

	key := path.Join(imageKeyPrefix, id.String(), uuid.NewString()+ext)
	if err := g.blobs.Put(ctx, key, bytes.NewReader(image), int64(len(image)), mime); err != nil {
		g.log.Printf("image put %s: %v", key, err)
		return "", fmt.Errorf("image put: %w", domain.ErrStorage)
	}
	return key, nil
}

// Logout отзывает токен до конца его срока жизни (серверная ревокация по jti).
func (g *Gateway) Logout(ctx context.Context, raw domain.Token) error {
	claims, err := g.tokens.Parse(ctx, raw)
	if err != nil {
		return domain.ErrUnauth
	}
	if err := g.blacklist.Revoke(ctx, claims.JTI, claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke: %w", err)
	}
	return nil
}
