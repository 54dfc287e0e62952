package cache

import (
	"context"
	"gourluses/cache/inmemory"
	"gourluses/models"
	"gourluses/repository"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const exampleURL = "http://example.com"

type dbRecorder struct {
	repository.UnimplementedRepository
	mutex       sync.Mutex
	getCount    int
	updateCount int
	href        string
	missing     bool
}

func (d *dbRecorder) GetURL(ctx context.Context, id int64) (models.Url, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.getCount++
	if d.missing {
		return models.Url{}, repository.ErrRecordNotFound
	}
	return models.Url{Id: id, Href: d.href}, nil
}

func (d *dbRecorder) UpdateURL(ctx context.Context, id int64, href string) (models.Url, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.updateCount++
	d.href = href
	return models.Url{Id: id, Href: href}, nil
}

func (d *dbRecorder) gets() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.getCount
}

type cacheTestSuite struct {
	suite.Suite
	dbRecorder *dbRecorder
	cache      repository.Repository
	ctx        context.Context
	numG       int
}

func (suite *cacheTestSuite) SetupTest() {
	suite.dbRecorder = &dbRecorder{href: exampleURL}
	engine := inmemory.New(DefaultExp, DefaultClearInterval)
	suite.cache = New(suite.dbRecorder, engine, time.Hour, zap.NewNop())
	suite.ctx = context.Background()
	suite.numG = 20000
}

func (suite *cacheTestSuite) Test_GetURL_only_one_goroutine_can_hit_database_if_they_query_same_id() {
	var wg sync.WaitGroup
	wg.Add(suite.numG)
	for i := 0; i < suite.numG; i++ {
		go func() {
			defer wg.Done()
			url, err := suite.cache.GetURL(suite.ctx, 1)
			suite.NoError(err)
			suite.Equal(exampleURL, url.Href)
		}()
	}
	wg.Wait()

	suite.Equal(1, suite.dbRecorder.gets())
}

func (suite *cacheTestSuite) Test_GetURL_every_id_hits_database_once_then_hits_cache() {
	concurrentCall := func(numG int) {
		var wg sync.WaitGroup
		wg.Add(numG)
		for i := 0; i < numG; i++ {
			go func(i int) {
				defer wg.Done()
				suite.cache.GetURL(suite.ctx, int64(i))
			}(i)
		}
		wg.Wait()
	}
	concurrentCall(suite.numG) // first call
	suite.Equal(suite.numG, suite.dbRecorder.gets(), "hit database")
	concurrentCall(suite.numG) // second call
	suite.Equal(suite.numG, suite.dbRecorder.gets(), "hit cache, so `getCount` does not increase")
}

func (suite *cacheTestSuite) Test_GetURL_misses_are_not_cached() {
	suite.dbRecorder.missing = true

	_, err := suite.cache.GetURL(suite.ctx, 1)
	suite.ErrorIs(err, repository.ErrRecordNotFound)
	_, err = suite.cache.GetURL(suite.ctx, 1)
	suite.ErrorIs(err, repository.ErrRecordNotFound)

	suite.Equal(2, suite.dbRecorder.gets())
}

func (suite *cacheTestSuite) Test_UpdateURL_invalidates_entry() {
	_, err := suite.cache.GetURL(suite.ctx, 1)
	suite.Require().NoError(err)

	_, err = suite.cache.UpdateURL(suite.ctx, 1, "http://changed.example")
	suite.Require().NoError(err)
	suite.Equal(1, suite.dbRecorder.updateCount)

	url, err := suite.cache.GetURL(suite.ctx, 1)
	suite.NoError(err)
	suite.Equal("http://changed.example", url.Href)
	suite.Equal(2, suite.dbRecorder.gets())
}

func (suite *cacheTestSuite) Test_Ping_without_pinger_is_ok() {
	suite.NoError(suite.cache.(repository.Pinger).Ping(suite.ctx))
}

func Test_cacheTestSuite(t *testing.T) {
	suite.Run(t, new(cacheTestSuite))
}

// parkedRepo holds its first GetURL after reading the href until release is
// closed.
type parkedRepo struct {
	repository.UnimplementedRepository
	mutex   sync.Mutex
	href    string
	started chan struct{}
	release chan struct{}
}

func newParkedRepo(href string) *parkedRepo {
	return &parkedRepo{href: href, started: make(chan struct{}), release: make(chan struct{})}
}

func (p *parkedRepo) GetURL(ctx context.Context, id int64) (models.Url, error) {
	p.mutex.Lock()
	url := models.Url{Id: id, Href: p.href}
	release := p.release
	p.release = nil
	p.mutex.Unlock()

	if release != nil {
		close(p.started)
		select {
		case <-release:
		case <-ctx.Done():
			return models.Url{}, ctx.Err()
		}
	}
	return url, nil
}

func (p *parkedRepo) UpdateURL(ctx context.Context, id int64, href string) (models.Url, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.href = href
	return models.Url{Id: id, Href: href}, nil
}

type result struct {
	url models.Url
	err error
}

func Test_GetURL_started_before_update_does_not_cache_old_href(t *testing.T) {
	db := newParkedRepo("http://old.example")
	release := db.release
	c := New(db, inmemory.New(DefaultExp, DefaultClearInterval), time.Hour, zap.NewNop())
	ctx := context.Background()

	first := make(chan result, 1)
	go func() {
		url, err := c.GetURL(ctx, 1)
		first <- result{url, err}
	}()
	<-db.started

	_, err := c.UpdateURL(ctx, 1, "http://new.example")
	require.NoError(t, err)
	close(release)
	require.NoError(t, (<-first).err)

	url, err := c.GetURL(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "http://new.example", url.Href)
}

func Test_GetURL_cancelled_caller_does_not_fail_other_callers(t *testing.T) {
	db := newParkedRepo(exampleURL)
	release := db.release
	c := New(db, inmemory.New(DefaultExp, DefaultClearInterval), time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	first := make(chan result, 1)
	go func() {
		url, err := c.GetURL(ctx, 1)
		first <- result{url, err}
	}()
	<-db.started

	second := make(chan result, 1)
	go func() {
		url, err := c.GetURL(context.Background(), 1)
		second <- result{url, err}
	}()

	cancel()
	assert.ErrorIs(t, (<-first).err, context.Canceled)

	close(release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, exampleURL, res.url.Href)
}
