package controllers

import (
	"errors"
	"gourluses/repository"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	urlIDParam = "urlId"
	useIDParam = "useId"
)

type urlReqData struct {
	Data struct {
		Href string `json:"href"`
	} `json:"data"`
}

// bindHref extracts data.href from the body. An empty body counts as a
// missing href.
func bindHref(c *gin.Context) (string, error) {
	var req urlReqData
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return "", newHTTPError(http.StatusBadRequest, "%s", err.Error())
	}
	if req.Data.Href == "" {
		return "", newHTTPError(http.StatusBadRequest, "Data must include href")
	}
	return req.Data.Href, nil
}

// paramID parses an integer path parameter. Anything that is not an integer
// cannot name a record, so callers treat !ok as not found.
func paramID(c *gin.Context, name string) (id int64, ok bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil
}

func urlNotFound(c *gin.Context) *HTTPError {
	return newHTTPError(http.StatusNotFound, "URL id not found: %s", c.Param(urlIDParam))
}

func useNotFound(c *gin.Context) *HTTPError {
	return newHTTPError(http.StatusNotFound, "Use id not found: %s", c.Param(useIDParam))
}

// notFoundAs replaces repository.ErrRecordNotFound with the given 404 and
// leaves other errors alone.
func notFoundAs(err error, notFound *HTTPError) error {
	if errors.Is(err, repository.ErrRecordNotFound) {
		return notFound
	}
	return err
}
