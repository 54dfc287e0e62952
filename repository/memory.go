package repository

import (
	"context"
	"gourluses/idgenerator"
	"gourluses/models"
	"sync"
	"time"
)

// NewMemoryRepo returns a process-local store. Records live until the process
// exits.
func NewMemoryRepo() Repository {
	return &memoryRepository{
		urlIDs: idgenerator.New(),
		useIDs: idgenerator.New(),
		urls:   make([]models.Url, 0),
		uses:   make([]models.Use, 0),
	}
}

type memoryRepository struct {
	urlIDs idgenerator.IDGenerator
	useIDs idgenerator.IDGenerator

	mu   sync.RWMutex
	urls []models.Url
	uses []models.Use
}

func (m *memoryRepository) CreateURL(ctx context.Context, href string) (models.Url, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	url := models.Url{Id: m.urlIDs.Next(), Href: href}
	m.urls = append(m.urls, url)
	return url, nil
}

func (m *memoryRepository) ListURLs(ctx context.Context) ([]models.Url, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	urls := make([]models.Url, len(m.urls))
	copy(urls, m.urls)
	return urls, nil
}

func (m *memoryRepository) GetURL(ctx context.Context, id int64) (models.Url, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.urlIndex(id); i >= 0 {
		return m.urls[i], nil
	}
	return models.Url{}, ErrRecordNotFound
}

func (m *memoryRepository) UpdateURL(ctx context.Context, id int64, href string) (models.Url, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.urlIndex(id)
	if i < 0 {
		return models.Url{}, ErrRecordNotFound
	}
	m.urls[i].Href = href
	return m.urls[i], nil
}

func (m *memoryRepository) CreateUse(ctx context.Context, urlID int64, at time.Time) (models.Use, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	use := models.NewUse(urlID, at)
	use.Id = m.useIDs.Next()
	m.uses = append(m.uses, use)
	return use, nil
}

func (m *memoryRepository) ListUses(ctx context.Context) ([]models.Use, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	uses := make([]models.Use, len(m.uses))
	copy(uses, m.uses)
	return uses, nil
}

func (m *memoryRepository) ListUsesByURL(ctx context.Context, urlID int64) ([]models.Use, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	uses := make([]models.Use, 0)
	for _, use := range m.uses {
		if use.UrlId == urlID {
			uses = append(uses, use)
		}
	}
	return uses, nil
}

func (m *memoryRepository) GetUse(ctx context.Context, id int64) (models.Use, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.useIndex(id); i >= 0 {
		return m.uses[i], nil
	}
	return models.Use{}, ErrRecordNotFound
}

func (m *memoryRepository) DeleteUse(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.useIndex(id)
	if i < 0 {
		return ErrRecordNotFound
	}
	m.uses = append(m.uses[:i], m.uses[i+1:]...)
	return nil
}

// callers must hold mu
func (m *memoryRepository) urlIndex(id int64) int {
	for i, url := range m.urls {
		if url.Id == id {
			return i
		}
	}
	return -1
}

// callers must hold mu
func (m *memoryRepository) useIndex(id int64) int {
	for i, use := range m.uses {
		if use.Id == id {
			return i
		}
	}
	return -1
}
