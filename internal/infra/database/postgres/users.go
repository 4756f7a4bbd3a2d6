package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/EgorLis/med-vault/internal/domain"
)

const uniqueViolation = "23505"

// mapUserErr переводит ошибки драйвера в доменные:
// нет строки — ErrNotFound, конфликт уникальности email — ErrDuplicate.
func mapUserErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrDuplicate
	}
	return err
}

func (r *PGRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	q := r.qb().Insert(fmt.Sprintf("%s.users", r.schema)).
		Columns("full_name", "email", "gender", "phone", "pass_hash", "image_key").
		Values(u.FullName, u.Email, u.Gender, u.Phone, u.PassHash, u.ImageKey).
		Suffix("RETURNING id, full_name, email, gender, phone, pass_hash, image_key, created_at, updated_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateUser", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.User
	if err := row.Scan(&out.ID, &out.FullName, &out.Email, &out.Gender, &out.Phone,
		&out.PassHash, &out.ImageKey, &out.CreatedAt, &out.UpdatedAt); err != nil {
		r.logger.Printf("CreateUser scan error after %s: %v", time.Since(start), err)
		return domain.User{}, mapUserErr(err)
	}
	r.logger.Printf("CreateUser ok in %s id=%s", time.Since(start), out.ID)
	return out, nil
}

func (r *PGRepo) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	q := r.qb().Select("id", "full_name", "email", "gender", "phone", "pass_hash", "image_key", "created_at", "updated_at").
		From(fmt.Sprintf("%s.users", r.schema)).
		Where(sq.Eq{"email": email})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UserByEmail", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var u domain.User
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Gender, &u.Phone,
		&u.PassHash, &u.ImageKey, &u.CreatedAt, &u.UpdatedAt); err != nil {
		r.logger.Printf("UserByEmail scan error after %s: %v", time.Since(start), err)
		return domain.User{}, mapUserErr(err)
	}
	r.logger.Printf("UserByEmail ok in %s id=%s", time.Since(start), u.ID)
	return u, nil
}

func (r *PGRepo) UserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	q := r.qb().Select("id", "full_name", "email", "gender", "phone", "pass_hash", "image_key", "created_at", "updated_at").
		From(fmt.Sprintf("%s.users", r.schema)).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UserByID", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var u domain.User
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Gender, &u.Phone,
		&u.PassHash, &u.ImageKey, &u.CreatedAt, &u.UpdatedAt); err != nil {
		r.logger.Printf("UserByID scan error after %s: %v", time.Since(start), err)
		return domain.User{}, mapUserErr(err)
	}
	r.logger.Printf("UserByID ok in %s id=%s", time.Since(start), u.ID)
	return u, nil
}

func (r *PGRepo) UpdateUser(ctx context.Context, u domain.User) (domain.User, error) {
	q := r.qb().Update(fmt.Sprintf("%s.users", r.schema)).
		SetMap(map[string]any{
			"email":      u.Email,
			"gender":     u.Gender,
			"phone":      u.Phone,
			"image_key":  u.ImageKey,
			"updated_at": sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": u.ID}).
		Suffix("RETURNING id, full_name, email, gender, phone, pass_hash, image_key, created_at, updated_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateUser", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.User
	if err := row.Scan(&out.ID, &out.FullName, &out.Email, &out.Gender, &out.Phone,
		&out.PassHash, &out.ImageKey, &out.CreatedAt, &out.UpdatedAt); err != nil {
		r.logger.Printf("UpdateUser scan error after %s: %v", time.Since(start), err)
		return domain.User{}, mapUserErr(err)
	}
	r.logger.Printf("UpdateUser ok in %s id=%s", time.Since(start), out.ID)
	return out, nil
}
