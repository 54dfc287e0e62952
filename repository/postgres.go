package repository

import (
	"context"
	"errors"
	"fmt"
	"gourluses/models"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewPGRepo(port int, host, dbuser, dbname, password string) (Repository, error) {
	args := fmt.Sprintf("host=%s port=%v user=%s dbname=%s password=%s sslmode=disable",
		host, port, dbuser, dbname, password)
	db, err := gorm.Open(postgres.Open(args), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&models.Url{}, &models.Use{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &postgresRepository{db: db}, nil
}

// NewPGRepoForTestWith is just for testing purposes (no calling AutoMigrate())
func NewPGRepoForTestWith(dial gorm.Dialector, cfg gorm.Config) (Repository, error) {
	db, err := gorm.Open(dial, &cfg)
	return &postgresRepository{db: db}, err
}

type postgresRepository struct {
	db *gorm.DB
}

func (p *postgresRepository) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (p *postgresRepository) CreateURL(ctx context.Context, href string) (models.Url, error) {
	url := models.Url{Href: href}
	if err := p.db.WithContext(ctx).Create(&url).Error; err != nil {
		return models.Url{}, fmt.Errorf("create url: %w", err)
	}
	return url, nil
}

func (p *postgresRepository) ListURLs(ctx context.Context) ([]models.Url, error) {
	urls := make([]models.Url, 0)
	if err := p.db.WithContext(ctx).Order("id").Find(&urls).Error; err != nil {
		return nil, fmt.Errorf("list urls: %w", err)
	}
	return urls, nil
}

func (p *postgresRepository) GetURL(ctx context.Context, id int64) (models.Url, error) {
	var url models.Url
	if err := p.db.WithContext(ctx).Where("id = ?", id).Take(&url).Error; err != nil {
		return models.Url{}, notFound(err)
	}
	return url, nil
}

func (p *postgresRepository) UpdateURL(ctx context.Context, id int64, href string) (models.Url, error) {
	url, err := p.GetURL(ctx, id)
	if err != nil {
		return models.Url{}, err
	}
	if err := p.db.WithContext(ctx).Model(&url).Update("href", href).Error; err != nil {
		return models.Url{}, fmt.Errorf("update url %d: %w", id, err)
	}
	url.Href = href
	return url, nil
}

func (p *postgresRepository) CreateUse(ctx context.Context, urlID int64, at time.Time) (models.Use, error) {
	use := models.NewUse(urlID, at)
	if err := p.db.WithContext(ctx).Create(&use).Error; err != nil {
		return models.Use{}, fmt.Errorf("create use: %w", err)
	}
	return use, nil
}

func (p *postgresRepository) ListUses(ctx context.Context) ([]models.Use, error) {
	uses := make([]models.Use, 0)
	if err := p.db.WithContext(ctx).Order("id").Find(&uses).Error; err != nil {
		return nil, fmt.Errorf("list uses: %w", err)
	}
	return uses, nil
}

func (p *postgresRepository) ListUsesByURL(ctx context.Context, urlID int64) ([]models.Use, error) {
	uses := make([]models.Use, 0)
	if err := p.db.WithContext(ctx).Where("url_id = ?", urlID).Order("id").Find(&uses).Error; err != nil {
		return nil, fmt.Errorf("list uses of url %d: %w", urlID, err)
	}
	return uses, nil
}

func (p *postgresRepository) GetUse(ctx context.Context, id int64) (models.Use, error) {
	var use models.Use
	if err := p.db.WithContext(ctx).Where("id = ?", id).Take(&use).Error; err != nil {
		return models.Use{}, notFound(err)
	}
	return use, nil
}

func (p *postgresRepository) DeleteUse(ctx context.Context, id int64) error {
	res := p.db.WithContext(ctx).Delete(&models.Use{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete use %d: %w", id, res.Error)
	}
	if res.RowsAffected != 1 {
		return ErrRecordNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}
