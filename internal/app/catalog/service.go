package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	domain "revu/internal/domain/catalog"
)

// Uploader stores binary content and returns a publicly reachable URL.
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}

// Service serves listing reads, rating reads, live watches and the photo
// update flow. It performs no aggregate mutations; those belong to the
// ratings aggregator.
type Service struct {
	Store  domain.Store
	Photos Uploader
	Logger *slog.Logger
}

// List materializes the entities matching the given filters once.
func (s *Service) List(ctx context.Context, kind domain.Kind, filters domain.Filters) ([]domain.Entity, error) {
	query := domain.BuildQuery(kind, filters)
	return s.Store.ListEntities(ctx, kind, query)
}

// Get returns one entity or ErrNotFound.
func (s *Service) Get(ctx context.Context, kind domain.Kind, id domain.EntityID) (*domain.Entity, error) {
	if id == "" {
		return nil, domain.ErrInvalidArgument
	}
	return s.Store.Entity(ctx, kind, id)
}

// Ratings returns an entity's reviews, newest first.
func (s *Service) Ratings(ctx context.Context, kind domain.Kind, id domain.EntityID) ([]domain.Rating, error) {
	if id == "" {
		return nil, domain.ErrInvalidArgument
	}
	return s.Store.ListRatings(ctx, kind, id)
}

// Watch opens a snapshot subscription over the filtered listing.
func (s *Service) Watch(ctx context.Context, kind domain.Kind, filters domain.Filters) (domain.EntityWatch, error) {
	query := domain.BuildQuery(kind, filters)
	return s.Store.WatchEntities(ctx, kind, query)
}

// WatchRatings opens a snapshot subscription over an entity's reviews.
func (s *Service) WatchRatings(ctx context.Context, kind domain.Kind, id domain.EntityID) (domain.RatingWatch, error) {
	if id == "" {
		return nil, domain.ErrInvalidArgument
	}
	return s.Store.WatchRatings(ctx, kind, id)
}

// UpdatePhoto uploads an image for the entity and persists the returned
// public URL on its photo field. Independent of any rating logic.
func (s *Service) UpdatePhoto(ctx context.Context, kind domain.Kind, id domain.EntityID, filename string, reader io.Reader, contentType string) (string, error) {
	if id == "" {
		return "", domain.ErrInvalidArgument
	}
	if s.Photos == nil {
		return "", fmt.Errorf("catalog: photo storage is not configured")
	}
	if _, err := s.Store.Entity(ctx, kind, id); err != nil {
		return "", err
	}

	key := photoKey(kind, id, filename)
	url, err := s.Photos.Upload(ctx, key, reader, contentType)
	if err != nil {
		return "", fmt.Errorf("catalog: photo upload: %w", err)
	}
	if err := s.Store.SetPhoto(ctx, kind, id, url); err != nil {
		return "", err
	}
	if s.Logger != nil {
		s.Logger.Info("entity photo updated", "kind", kind.Name, "entity_id", id, "url", url)
	}
	return url, nil
}

// photoKey namespaces uploads per entity and keeps keys unique so stale CDN
// caches never serve a replaced image.
func photoKey(kind domain.Kind, id domain.EntityID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s", kind.Collection, id, uuid.NewString(), ext)
}
