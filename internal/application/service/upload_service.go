package service

import (
	"context"
	"errors"

	"github.com/sangkips/remodela-api/internal/infrastructure/storage"
	"github.com/sangkips/remodela-api/pkg/apperror"
	"go.uber.org/zap"
)

// uploadFolders are the only prefixes clients may upload into.
var uploadFolders = map[string]bool{
	"products": true,
	"services": true,
	"projects": true,
	"quotes":   true,
	"company":  true,
}

// UploadService stores images for catalog records and quotes.
type UploadService struct {
	store storage.ImageStore
	log   *zap.Logger
}

// NewUploadService accepts a nil store, in which case uploads report 503.
func NewUploadService(store storage.ImageStore, log *zap.Logger) *UploadService {
	return &UploadService{store: store, log: log.Named("uploads")}
}

func (s *UploadService) UploadImage(ctx context.Context, folder string, data []byte) (string, error) {
	if s.store == nil {
		return "", apperror.NewAppError(apperror.ErrServiceUnavailable.Code, "El almacenamiento de imágenes no está configurado")
	}
	if folder == "" {
		folder = "quotes"
	}
	if !uploadFolders[folder] {
		return "", apperror.NewFieldError("folder", "Carpeta inválida")
	}
	if len(data) == 0 {
		return "", apperror.NewFieldError("file", "El archivo está vacío")
	}

	url, err := s.store.PutImage(ctx, folder, data)
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return "", apperror.NewFieldError("file", "El archivo excede el tamaño permitido")
	case errors.Is(err, storage.ErrUnsupportedImage):
		return "", apperror.NewFieldError("file", "Formato de imagen no soportado")
	case err != nil:
		s.log.Error("image upload failed", zap.Error(err))
		return "", apperror.NewUpstreamError("No se pudo subir la imagen")
	}
	return url, nil
}
