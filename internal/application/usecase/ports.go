package usecase

import (
	"context"
	"io"
)

// Mailer puerto de notificaciones por correo. El envío es informativo:
// sus fallos se registran y nunca hacen fallar la operación principal.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// StoredFile referencia externa de un archivo guardado.
type StoredFile struct {
	FileID string
	URL    string
}

// FileStore puerto de almacenamiento binario externo (fotos de perfil).
type FileStore interface {
	Store(ctx context.Context, content io.Reader, size int64, contentType, name string) (*StoredFile, error)
	// Remove es best-effort: el llamador decide si el error es fatal.
	Remove(ctx context.Context, fileID string) error
	// OpenStream devuelve el contenido y su content type.
	OpenStream(ctx context.Context, fileID string) (io.ReadCloser, string, error)
}
