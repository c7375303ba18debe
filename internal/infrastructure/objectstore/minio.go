// Package objectstore adapta MinIO (o cualquier object store compatible S3)
// al puerto FileStore del dominio de cuentas.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/reconciliemos/cuentas-api/internal/application/usecase"
	"github.com/reconciliemos/cuentas-api/pkg/config"
)

var _ usecase.FileStore = (*MinioStore)(nil)

// MinioStore envuelve el cliente MinIO y el bucket de fotos de perfil.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore construye el cliente desde la configuración.
func NewMinioStore(cfg config.MinioConfig) (*MinioStore, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("minio: endpoint requerido")
	}
	if strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("minio: access key y secret key requeridos")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("minio: bucket requerido")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinioStore{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

// EnsureBucket crea el bucket configurado si no existe.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

// Store sube el objeto con una clave única y devuelve su referencia y URL pública.
func (s *MinioStore) Store(ctx context.Context, content io.Reader, size int64, contentType, name string) (*usecase.StoredFile, error) {
	key := fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.New().String()[:8], sanitizeName(name))
	_, err := s.client.PutObject(ctx, s.bucket, key, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("minio put %q: %w", key, err)
	}
	return &usecase.StoredFile{
		FileID: key,
		URL:    s.publicURL + "/" + key,
	}, nil
}

// Remove elimina el objeto del bucket.
func (s *MinioStore) Remove(ctx context.Context, fileID string) error {
	if fileID == "" {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, fileID, minio.RemoveObjectOptions{})
}

// OpenStream abre el objeto para lectura y devuelve su content type.
func (s *MinioStore) OpenStream(ctx context.Context, fileID string) (io.ReadCloser, string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, fileID, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("minio get %q: %w", fileID, err)
	}
	// GetObject es perezoso: Stat fuerza la petición y detecta objetos inexistentes.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, "", fmt.Errorf("minio stat %q: %w", fileID, err)
	}
	return obj, info.ContentType, nil
}

// sanitizeName limpia el nombre original para usarlo en la clave del objeto.
func sanitizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('-')
		}
	}
	if sb.Len() == 0 {
		return "archivo"
	}
	return sb.String()
}
