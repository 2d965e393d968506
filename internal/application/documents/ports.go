package documents

import (
	"context"
	"io"
)

// FileStorage guarda el contenido de los archivos subidos. Save devuelve la clave
// relativa con la que luego se sirve el archivo bajo /uploads.
type FileStorage interface {
	Save(ctx context.Context, vendorID, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// Metrics contadores de subidas y revisiones. Opcional.
type Metrics interface {
	DocumentUploaded(category string, size int64)
	DocumentReviewed(status, role string)
}
