package photo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bookline-app/bookline-backend/internal/business"
	"github.com/bookline-app/bookline-backend/internal/pkg/storage"
	"github.com/bookline-app/bookline-backend/internal/user"
)

type Service interface {
	Upload(ctx context.Context, businessID string, header *multipart.FileHeader, actorID string, actorRole user.Role) (*Photo, error)
	ListByBusiness(ctx context.Context, businessID string) ([]Photo, error)
	Delete(ctx context.Context, id string, actorID string, actorRole user.Role) error
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
}

type service struct {
	repo       Repository
	bizService business.Service
	storage    storage.Storage
	imgProc    *storage.ImageProcessor
}

func NewService(repo Repository, bizService business.Service, store storage.Storage) Service {
	return &service{
		repo:       repo,
		bizService: bizService,
		storage:    store,
		imgProc:    storage.NewImageProcessor(),
	}
}

func (s *service) Upload(ctx context.Context, businessID string, header *multipart.FileHeader, actorID string, actorRole user.Role) (*Photo, error) {
	if err := s.canManage(ctx, businessID, actorID, actorRole); err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffer the content so it can be read twice (original + thumbnail).
	// Uploads are images, small enough to hold in memory.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read file content: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	photoID := uuid.New().String()

	// Sharding path: photos/ab/UUID.ext
	shard := photoID[:2]
	storagePath := fmt.Sprintf("photos/%s/%s%s", shard, photoID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("save photo to storage: %w", err)
	}

	var thumbnailPath *string
	thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), 320, 320)
	if err == nil {
		tPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, photoID)
		if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
			thumbnailPath = &tPath
		}
	}

	p := &Photo{
		BusinessID:    businessID,
		UploaderID:    actorID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// Clean up storage if the DB insert fails
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return p, nil
}

func (s *service) ListByBusiness(ctx context.Context, businessID string) ([]Photo, error) {
	if _, err := s.bizService.GetByID(ctx, businessID); err != nil {
		return nil, err
	}
	return s.repo.ListByBusiness(ctx, businessID)
}

func (s *service) Delete(ctx context.Context, id string, actorID string, actorRole user.Role) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.canManage(ctx, p.BusinessID, actorID, actorRole); err != nil {
		return err
	}

	// Best-effort cleanup: a dangling file is better than a dangling record
	_ = s.storage.Delete(ctx, p.StoragePath)
	if p.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *p.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve photo from storage: %w", err)
	}

	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if p.ThumbnailPath == nil {
		return nil, nil, ErrNotFound
	}

	stream, err := s.storage.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve thumbnail from storage: %w", err)
	}

	return stream, p, nil
}

func (s *service) canManage(ctx context.Context, businessID string, actorID string, actorRole user.Role) error {
	if actorRole == user.RoleAdmin {
		return nil
	}
	biz, err := s.bizService.GetByID(ctx, businessID)
	if err != nil {
		return err
	}
	if biz.OwnerUserID != actorID {
		return ErrPermissionDenied
	}
	return nil
}
