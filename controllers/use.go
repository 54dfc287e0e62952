package controllers

import (
	"gourluses/metrics"
	"gourluses/models"
	"gourluses/repository"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UseController struct {
	DB  repository.Repository
	Log *zap.Logger
}

// List handles GET /uses.
func (u UseController) List(c *gin.Context) {
	uses, err := u.DB.ListUses(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": uses})
}

// Read handles GET /uses/:useId.
func (u UseController) Read(c *gin.Context) {
	use, ok := u.use(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": use})
}

// Delete handles DELETE /uses/:useId.
func (u UseController) Delete(c *gin.Context) {
	id, ok := paramID(c, useIDParam)
	if !ok {
		fail(c, useNotFound(c))
		return
	}
	u.delete(c, id)
}

// ListByURL handles GET /urls/:urlId/uses.
func (u UseController) ListByURL(c *gin.Context) {
	urlID, ok := u.urlID(c)
	if !ok {
		return
	}
	uses, err := u.DB.ListUsesByURL(c.Request.Context(), urlID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": uses})
}

// ReadByURL handles GET /urls/:urlId/uses/:useId.
func (u UseController) ReadByURL(c *gin.Context) {
	use, ok := u.useOfURL(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": use})
}

// DeleteByURL handles DELETE /urls/:urlId/uses/:useId. Only a use that
// belongs to the url can be deleted through this route.
func (u UseController) DeleteByURL(c *gin.Context) {
	use, ok := u.useOfURL(c)
	if !ok {
		return
	}
	u.delete(c, use.Id)
}

func (u UseController) delete(c *gin.Context, id int64) {
	if err := u.DB.DeleteUse(c.Request.Context(), id); err != nil {
		fail(c, notFoundAs(err, useNotFound(c)))
		return
	}
	metrics.RecordUseDeleted()
	u.Log.Debug("use deleted", zap.Int64("id", id))
	c.Status(http.StatusNoContent)
}

// urlID resolves :urlId to an existing url id, failing the request otherwise.
func (u UseController) urlID(c *gin.Context) (int64, bool) {
	id, ok := paramID(c, urlIDParam)
	if !ok {
		fail(c, urlNotFound(c))
		return 0, false
	}
	if _, err := u.DB.GetURL(c.Request.Context(), id); err != nil {
		fail(c, notFoundAs(err, urlNotFound(c)))
		return 0, false
	}
	return id, true
}

func (u UseController) use(c *gin.Context) (models.Use, bool) {
	id, ok := paramID(c, useIDParam)
	if !ok {
		fail(c, useNotFound(c))
		return models.Use{}, false
	}
	use, err := u.DB.GetUse(c.Request.Context(), id)
	if err != nil {
		fail(c, notFoundAs(err, useNotFound(c)))
		return models.Use{}, false
	}
	return use, true
}

func (u UseController) useOfURL(c *gin.Context) (models.Use, bool) {
	urlID, ok := u.urlID(c)
	if !ok {
		return models.Use{}, false
	}
	use, ok := u.use(c)
	if !ok {
		return models.Use{}, false
	}
	if use.UrlId != urlID {
		fail(c, useNotFound(c))
		return models.Use{}, false
	}
	return use, true
}
