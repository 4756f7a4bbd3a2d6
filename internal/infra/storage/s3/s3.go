package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/EgorLis/med-vault/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

type Storage struct {
	cl     *minio.Client
	bucket string
	logger *log.Logger
}

var _ domain.BlobStorage = (*Storage)(nil)

func New(ctx context.Context, cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}

	s := &Storage{cl: cl, bucket: cfg.Bucket, logger: logger}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) ensureBucket(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket check: %w", err)
	}
	if ok {
		return nil
	}
	s.logger.Printf("bucket %q does not exist, creating", s.bucket)
	return s.cl.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *Storage) Ping(ctx context.Context) error {
	_, err := s.cl.BucketExists(ctx, s.bucket)
	return err
}

// Put записывает объект под ключом, который сгенерировал вызывающий.
// Размер известен заранее (лимит 10 MiB), поэтому стримим без чанков.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, mime string) error {
	opts := minio.PutObjectOptions{ContentType: mime}
	info, err := s.cl.PutObject(ctx, s.bucket, key, r, size, opts)
	if err != nil {
		s.logger.Printf("PUT %q failed: %v", key, err)
		return err
	}
	s.logger.Printf("PUT %q ok (%d bytes)", key, info.Size)
	return nil
}

// Get открывает поток на чтение. Отсутствие объекта транслируем в
// domain.ErrBlobMissing — выше по стеку это сигнал нарушения целостности.
func (s *Storage) Get(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	// HEAD до GET: у minio GetObject ленивый, ошибка всплыла бы только на Read
	info, err := s.cl.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			s.logger.Printf("GET %q: object missing", key)
			return nil, 0, domain.ErrBlobMissing
		}
		s.logger.Printf("STAT %q failed: %v", key, err)
		return nil, 0, err
	}

	obj, err := s.cl.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		s.logger.Printf("GET %q failed: %v", key, err)
		return nil, 0, err
	}
	s.logger.Printf("GET %q ok (%d bytes)", key, info.Size)
	return obj, info.Size, nil
}

// Delete идемпотентен: у S3 RemoveObject по отсутствующему ключу — не ошибка.
func (s *Storage) Delete(ctx context.Context, key string) error {
	err := s.cl.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.Printf("DEL %q failed: %v", key, err)
		return err
	}
	s.logger.Printf("DEL %q ok", key)
	return nil
}

func isNoSuchKey(err error) bool {
	var er minio.ErrorResponse
	if errors.As(err, &er) {
		return er.Code == "NoSuchKey" || er.StatusCode == 404
	}
	return false
}
