package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/EgorLis/med-vault/internal/domain"
)

func (r *PGRepo) CreateFile(ctx context.Context, f domain.MedicalFile) (domain.MedicalFile, error) {
	q := r.qb().Insert(fmt.Sprintf("%s.medical_files", r.schema)).
		Columns("owner_id", "name", "category", "mime", "size_bytes", "storage_key").
		Values(f.OwnerID, f.Name, string(f.Category), f.MIME, f.SizeBytes, f.StorageKey).
		Suffix("RETURNING id, owner_id, name, category, mime, size_bytes, storage_key, uploaded_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateFile", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var out domain.MedicalFile
	if err := row.Scan(&out.ID, &out.OwnerID, &out.Name, &out.Category, &out.MIME,
		&out.SizeBytes, &out.StorageKey, &out.UploadedAt); err != nil {
		r.logger.Printf("CreateFile scan error after %s: %v", time.Since(start), err)
		return domain.MedicalFile{}, err
	}
	r.logger.Printf("CreateFile ok in %s id=%s owner=%s", time.Since(start), out.ID, out.OwnerID)
	return out, nil
}

// FileByID ищет строго в паре (id, owner): чужой файл и несуществующий id
// дают одинаковый ErrNotFound — принадлежность не утекает через ошибки.
func (r *PGRepo) FileByID(ctx context.Context, id domain.FileID, owner domain.UserID) (domain.MedicalFile, error) {
	q := r.qb().Select("id", "owner_id", "name", "category", "mime", "size_bytes", "storage_key", "uploaded_at").
		From(fmt.Sprintf("%s.medical_files", r.schema)).
		Where(sq.And{sq.Eq{"id": id}, sq.Eq{"owner_id": owner}})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("FileByID", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var f domain.MedicalFile
	if err := row.Scan(&f.ID, &f.OwnerID, &f.Name, &f.Category, &f.MIME,
		&f.SizeBytes, &f.StorageKey, &f.UploadedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MedicalFile{}, domain.ErrNotFound
		}
		r.logger.Printf("FileByID scan error after %s: %v", time.Since(start), err)
		return domain.MedicalFile{}, err
	}
	r.logger.Printf("FileByID ok in %s id=%s", time.Since(start), f.ID)
	return f, nil
}

func (r *PGRepo) FilesByOwner(ctx context.Context, owner domain.UserID) ([]domain.MedicalFile, error) {
	q := r.qb().Select("id", "owner_id", "name", "category", "mime", "size_bytes", "storage_key", "uploaded_at").
		From(fmt.Sprintf("%s.medical_files", r.schema)).
		Where(sq.Eq{"owner_id": owner}).
		OrderBy("uploaded_at DESC", "id DESC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("FilesByOwner", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("FilesByOwner query error after %s: %v", time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var res []domain.MedicalFile
	for rows.Next() {
		var f domain.MedicalFile
		if err := rows.Scan(&f.ID, &f.OwnerID, &f.Name, &f.Category, &f.MIME,
			&f.SizeBytes, &f.StorageKey, &f.UploadedAt); err != nil {
			r.logger.Printf("FilesByOwner scan error: %v", err)
			return nil, err
		}
		res = append(res, f)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("FilesByOwner rows error: %v", err)
		return nil, err
	}
	r.logger.Printf("FilesByOwner ok in %s count=%d", time.Since(start), len(res))
	return res, nil
}

func (r *PGRepo) DeleteFile(ctx context.Context, id domain.FileID, owner domain.UserID) error {
	q := r.qb().Delete(fmt.Sprintf("%s.medical_files", r.schema)).
		Where(sq.And{sq.Eq{"id": id}, sq.Eq{"owner_id": owner}})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteFile", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("DeleteFile exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Printf("DeleteFile no rows affected in %s (not found or not owner)", time.Since(start))
		return domain.ErrNotFound
	}
	r.logger.Printf("DeleteFile ok in %s id=%s", time.Since(start), id)
	return nil
}
