package repository

import (
	"context"
	"errors"
	"gourluses/models"
	"time"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	errUnimplemented  = errors.New("not implemented")
)

type Repository interface {
	CreateURL(ctx context.Context, href string) (models.Url, error)
	ListURLs(ctx context.Context) ([]models.Url, error)
	GetURL(ctx context.Context, id int64) (models.Url, error)
	// UpdateURL replaces the href of an existing url and returns the result.
	UpdateURL(ctx context.Context, id int64, href string) (models.Url, error)

	CreateUse(ctx context.Context, urlID int64, at time.Time) (models.Use, error)
	ListUses(ctx context.Context) ([]models.Use, error)
	ListUsesByURL(ctx context.Context, urlID int64) ([]models.Use, error)
	GetUse(ctx context.Context, id int64) (models.Use, error)
	DeleteUse(ctx context.Context, id int64) error
}

// Pinger is implemented by repositories backed by a remote server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// UnimplementedRepository can be embedded to satisfy Repository in tests
// that only care about a few methods.
type UnimplementedRepository struct{}

func (UnimplementedRepository) CreateURL(ctx context.Context, href string) (models.Url, error) {
	return models.Url{}, errUnimplemented
}

func (UnimplementedRepository) ListURLs(ctx context.Context) ([]models.Url, error) {
	return nil, errUnimplemented
}

func (UnimplementedRepository) GetURL(ctx context.Context, id int64) (models.Url, error) {
	return models.Url{}, errUnimplemented
}

func (UnimplementedRepository) UpdateURL(ctx context.Context, id int64, href string) (models.Url, error) {
	return models.Url{}, errUnimplemented
}

func (UnimplementedRepository) CreateUse(ctx context.Context, urlID int64, at time.Time) (models.Use, error) {
	return models.Use{}, errUnimplemented
}

func (UnimplementedRepository) ListUses(ctx context.Context) ([]models.Use, error) {
	return nil, errUnimplemented
}

func (UnimplementedRepository) ListUsesByURL(ctx context.Context, urlID int64) ([]models.Use, error) {
	return nil, errUnimplemented
}

func (UnimplementedRepository) GetUse(ctx context.Context, id int64) (models.Use, error) {
	return models.Use{}, errUnimplemented
}

func (UnimplementedRepository) DeleteUse(ctx context.Context, id int64) error {
	return errUnimplemented
}
