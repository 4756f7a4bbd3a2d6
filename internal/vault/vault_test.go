package vault

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/med-vault/internal/domain"
)

// -------- test fakes --------

type memFilesRepo struct {
	rows      map[domain.FileID]domain.MedicalFile
	createErr error
	seq       int
}

func newMemFilesRepo() *memFilesRepo {
	return &memFilesRepo{rows: make(map[domain.FileID]domain.MedicalFile)}
}

func (r *memFilesRepo) CreateFile(_ context.Context, f domain.MedicalFile) (domain.MedicalFile, error) {
	if r.createErr != nil {
		return domain.MedicalFile{}, r.createErr
	}
	f.ID = uuid.New()
	r.seq++
	f.UploadedAt = time.Unix(int64(r.seq), 0).UTC()
	r.rows[f.ID] = f
	return f, nil
}

func (r *memFilesRepo) FileByID(_ context.Context, id domain.FileID, owner domain.UserID) (domain.MedicalFile, error) {
	f, ok := r.rows[id]
	if !ok || f.OwnerID != owner {
		return domain.MedicalFile{}, domain.ErrNotFound
	}
	return f, nil
}

func (r *memFilesRepo) FilesByOwner(_ context.Context, owner domain.UserID) ([]domain.MedicalFile, error) {
	var out []domain.MedicalFile
	for _, f := range r.rows {
		if f.OwnerID == owner {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (r *memFilesRepo) DeleteFile(_ context.Context, id domain.FileID, owner domain.UserID) error {
	f, ok := r.rows[id]
	if !ok || f.OwnerID != owner {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type memBlobs struct {
	objects map[string][]byte
	putErr  error
	delErr  error
	deleted []string
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: make(map[string][]byte)}
}

func (b *memBlobs) Ping(context.Context) error { return nil }

func (b *memBlobs) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if b.putErr != nil {
		return b.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.objects[key] = data
	return nil
}

func (b *memBlobs) Get(_ context.Context, key string) (io.ReadCloser, int64, error) {
	data, ok := b.objects[key]
	if !ok {
		return nil, 0, domain.ErrBlobMissing
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (b *memBlobs) Delete(_ context.Context, key string) error {
	b.deleted = append(b.deleted, key)
	if b.delErr != nil {
		return b.delErr
	}
	delete(b.objects, key)
	return nil
}

func testVault() (*Vault, *memFilesRepo, *memBlobs) {
	files := newMemFilesRepo()
	blobs := newMemBlobs()
	return New(log.New(io.Discard, "", 0), files, blobs), files, blobs
}

// первые байты реальных форматов — контент, а не имя, определяет тип
func pdfBody(size int) []byte {
	b := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte{'a'}, size)...)
	return b[:size]
}

func pngBody() []byte {
	return []byte("\x89PNG\r\n\x1a\n0000000000000000")
}

func jpegBody() []byte {
	return append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0}, 64)...)
}

// -------- Upload --------

func TestUpload_RoundTrip(t *testing.T) {
	t.Parallel()

	v, _, blobs := testVault()
	owner := uuid.New()
	body := pdfBody(1024)

	f, err := v.Upload(context.Background(), owner, "blood panel.pdf", "Lab Report", body)
	require.NoError(t, err)

	assert.Equal(t, owner, f.OwnerID)
	assert.Equal(t, "blood panel.pdf", f.Name)
	assert.Equal(t, domain.CategoryLabReport, f.Category)
	assert.Equal(t, "application/pdf", f.MIME)
	assert.Equal(t, int64(len(body)), f.SizeBytes)

	// байты возвращаются ровно те, что были загружены
	got, rc, err := v.Open(context.Background(), owner, f.ID)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, body, data)
	assert.Equal(t, f.ID, got.ID)
	assert.Len(t, blobs.objects, 1)
}

func TestUpload_EmptyFile(t *testing.T) {
	t.Parallel()

	v, _, _ := testVault()
	_, err := v.Upload(context.Background(), uuid.New(), "x", "Other", nil)
	assert.ErrorIs(t, err, domain.ErrBadParams)
}

func TestUpload_TextRenamedToPDF(t *testing.T) {
	t.Parallel()

	// текстовый файл с именем .pdf — тип определяется по байтам и отклоняется
	v, _, blobs := testVault()
	_, err := v.Upload(context.Background(), uuid.New(), "report.pdf", "Other",
		[]byte("just some plain text pretending to be a pdf"))
	assert.ErrorIs(t, err, domain.ErrBadParams)
	assert.Empty(t, blobs.objects)
}

func TestUpload_SizeBoundary(t *testing.T) {
	t.Parallel()

	v, _, _ := testVault()
	owner := uuid.New()

	// ровно на лимите — принимается
	_, err := v.Upload(context.Background(), owner, "max", "Other", pdfBody(domain.MaxFileSize))
	require.NoError(t, err)

	// на байт больше — отказ
	_, err = v.Upload(context.Background(), owner, "over", "Other", pdfBody(domain.MaxFileSize+1))
	assert.ErrorIs(t, err, domain.ErrBadParams)
}

func TestUpload_EmptyBeforeTypeBeforeSize(t *testing.T) {
	t.Parallel()

	v, _, _ := testVault()
	owner := uuid.New()

	// пустой + неизвестный тип: побеждает «пустой»
	_, err := v.Upload(context.Background(), owner, "x", "Other", []byte{})
	assert.ErrorIs(t, err, domain.ErrBadParams)

	// неверный тип + превышение размера: побеждает тип
	big := bytes.Repeat([]byte("text "), (domain.MaxFileSize/5)+1)
	_, err = v.Upload(context.Background(), owner, "x", "Other", big)
	require.ErrorIs(t, err, domain.ErrBadParams)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestUpload_UnknownCategoryBecomesOther(t *testing.T) {
	t.Parallel()

	v, _, _ := testVault()
	f, err := v.Upload(context.Background(), uuid.New(), "x", "Dentistry??", pdfBody(64))
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryOther, f.Category)
}

func TestUpload_KeyNeverFromUserName(t *testing.T) {
	t.Parallel()

	v, files, _ := testVault()
	owner := uuid.New()
	f, err := v.Upload(context.Background(), owner, "../../etc/passwd", "Other", pdfBody(64))
	require.NoError(t, err)

	key := files.rows[f.ID].StorageKey
	assert.True(t, strings.HasPrefix(key, "medical-files/"+owner.String()+"/"), "key = %q", key)
	assert.NotContains(t, key, "..")
	assert.True(t, strings.HasSuffix(key, ".pdf"))
}

func TestUpload_MetaInsertFailsCleansOrphan(t *testing.T) {
	t.Parallel()

	v, files, blobs := testVault()
	files.createErr = errors.New("pq: down")

	_, err := v.Upload(context.Background(), uuid.New(), "x", "Other", pdfBody(64))
	assert.ErrorIs(t, err, domain.ErrStorage)
	// блоб был записан и синхронно убран
	require.Len(t, blobs.deleted, 1)
	assert.Empty(t, blobs.objects)
}

func TestUpload_BlobPutFails(t *testing.T) {
	t.Parallel()

	v, files, blobs := testVault()
	blobs.putErr = errors.New("s3: connection refused")

	_, err := v.Upload(context.Background(), uuid.New(), "x", "Other", pdfBody(64))
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Empty(t, files.rows)
}

// -------- List --------

func TestList_NewestFirstAndOwnerScoped(t *testing.T) {
	t.Parallel()

	v, _, _ := testVault()
	owner, stranger := uuid.New(), uuid.New()

	first, err := v.Upload(context.Background(), owner, "first", "Other", pdfBody(16))
	require.NoError(t, err)
	second, err := v.Upload(context.Background(), owner, "second", "Other", pngBody())
	require.NoError(t, err)
	_, err = v.Upload(context.Background(), stranger, "foreign", "Other", jpegBody())
	require.NoError(t, err)

	got, err := v.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestList_EmptyOwner(t *testing.T) {
	t.Parallel()

	v, _, _ := testVault()
	got, err := v.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, got)
}

// -------- Delete --------

func TestDelete_RemovesMetaAndBlob(t *testing.T) {
	t.Parallel()

	v, files, blobs := testVault()
	owner := uuid.New()
	f, err := v.Upload(context.Background(), owner, "x", "Other", pdfBody(16))
	require.NoError(t, err)

	require.NoError(t, v.Delete(context.Background(), owner, f.ID))
	assert.Empty(t, files.rows)
	assert.Empty(t, blobs.objects)

	// повторное удаление того же id — NotFound
	assert.ErrorIs(t, v.Delete(context.Background(), owner, f.ID), domain.ErrNotFound)
}

func TestDelete_ForeignLooksAbsent(t *testing.T) {
	t.Parallel()

	v, files, _ := testVault()
	owner, stranger := uuid.New(), uuid.New()
	f, err := v.Upload(context.Background(), owner, "x", "Other", pdfBody(16))
	require.NoError(t, err)

	// чужой файл: та же ошибка, что и для несуществующего, и ничего не удалено
	err = v.Delete(context.Background(), stranger, f.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, files.rows, 1)
}

func TestDelete_BlobFailureStillSucceeds(t *testing.T) {
	t.Parallel()

	// метаданные — источник истины: строка ушла, значит операция удалась,
	// даже если хранилище блобов сейчас недоступно
	v, files, blobs := testVault()
	owner := uuid.New()
	f, err := v.Upload(context.Background(), owner, "x", "Other", pdfBody(16))
	require.NoError(t, err)

	blobs.delErr = errors.New("s3: timeout")
	require.NoError(t, v.Delete(context.Background(), owner, f.ID))
	assert.Empty(t, files.rows)
}

// -------- Open --------

func TestOpen_ForeignLooksAbsent(t *testing.T) {
	t.Parallel()

	v, _, _ := testVault()
	owner, stranger := uuid.New(), uuid.New()
	f, err := v.Upload(context.Background(), owner, "x", "Other", pdfBody(16))
	require.NoError(t, err)

	_, _, err = v.Open(context.Background(), stranger, f.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOpen_MetaWithoutBlob(t *testing.T) {
	t.Parallel()

	v, _, blobs := testVault()
	owner := uuid.New()
	f, err := v.Upload(context.Background(), owner, "x", "Other", pdfBody(16))
	require.NoError(t, err)

	// блоб исчез, строка осталась — это нарушение целостности, не NotFound
	blobs.objects = map[string][]byte{}
	_, _, err = v.Open(context.Background(), owner, f.ID)
	assert.ErrorIs(t, err, domain.ErrBlobMissing)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
