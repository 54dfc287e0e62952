package controllers

import (
	"gourluses/metrics"
	"gourluses/repository"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UrlController struct {
	DB  repository.Repository
	Log *zap.Logger
	// Now stamps recorded uses; time.Now when nil.
	Now func() time.Time
}

func (u UrlController) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

// Create handles POST /urls.
func (u UrlController) Create(c *gin.Context) {
	href, err := bindHref(c)
	if err != nil {
		fail(c, err)
		return
	}
	url, err := u.DB.CreateURL(c.Request.Context(), href)
	if err != nil {
		fail(c, err)
		return
	}
	u.Log.Debug("url created", zap.Int64("id", url.Id))
	c.JSON(http.StatusCreated, gin.H{"data": url})
}

// List handles GET /urls.
func (u UrlController) List(c *gin.Context) {
	urls, err := u.DB.ListURLs(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": urls})
}

// Read handles GET /urls/:urlId. Every successful read is recorded as a use.
func (u UrlController) Read(c *gin.Context) {
	id, ok := paramID(c, urlIDParam)
	if !ok {
		fail(c, urlNotFound(c))
		return
	}
	url, err := u.DB.GetURL(c.Request.Context(), id)
	if err != nil {
		fail(c, notFoundAs(err, urlNotFound(c)))
		return
	}
	use, err := u.DB.CreateUse(c.Request.Context(), url.Id, u.now())
	if err != nil {
		fail(c, err)
		return
	}
	metrics.RecordUse()
	u.Log.Debug("use recorded", zap.Int64("url_id", url.Id), zap.Int64("use_id", use.Id))
	c.JSON(http.StatusOK, gin.H{"data": url})
}

// Update handles PUT /urls/:urlId. A missing url wins over a missing href.
func (u UrlController) Update(c *gin.Context) {
	id, ok := paramID(c, urlIDParam)
	if !ok {
		fail(c, urlNotFound(c))
		return
	}
	if _, err := u.DB.GetURL(c.Request.Context(), id); err != nil {
		fail(c, notFoundAs(err, urlNotFound(c)))
		return
	}
	href, err := bindHref(c)
	if err != nil {
		fail(c, err)
		return
	}
	url, err := u.DB.UpdateURL(c.Request.Context(), id, href)
	if err != nil {
		fail(c, notFoundAs(err, urlNotFound(c)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": url})
}
