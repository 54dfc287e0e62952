package server

import (
	"gourluses/controllers"
	"gourluses/metrics"
	"gourluses/repository"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 30 * time.Second
)

// allMethods are registered on every route so that each route answers
// methods it does not support with its own 405.
var allMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

type methods map[string]gin.HandlerFunc

func NewRouter(db repository.Repository, logger *zap.Logger, timeout time.Duration) *gin.Engine {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		requestID(),
		requestLogger(logger),
		recordMetrics(),
		controllers.ErrorHandler(logger),
		controllers.Recovery(),
		withTimeout(timeout),
	)
	router.NoRoute(controllers.NotFound)
	router.NoMethod(controllers.MethodNotAllowed)

	health := controllers.HealthController{DB: db}
	router.GET("/health", health.Status)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	url := controllers.UrlController{DB: db, Log: logger.Named("urls")}
	use := controllers.UseController{DB: db, Log: logger.Named("uses")}

	handle(router, "/urls", methods{
		http.MethodGet:  url.List,
		http.MethodPost: url.Create,
	})
	handle(router, "/urls/:urlId", methods{
		http.MethodGet: url.Read,
		http.MethodPut: url.Update,
	})
	handle(router, "/urls/:urlId/uses", methods{
		http.MethodGet: use.ListByURL,
	})
	handle(router, "/urls/:urlId/uses/:useId", methods{
		http.MethodGet:    use.ReadByURL,
		http.MethodDelete: use.DeleteByURL,
	})
	handle(router, "/uses", methods{
		http.MethodGet: use.List,
	})
	handle(router, "/uses/:useId", methods{
		http.MethodGet:    use.Read,
		http.MethodDelete: use.Delete,
	})

	return router
}

// handle registers every method on path. HEAD is served by the GET handler
// when the route has one.
func handle(r gin.IRoutes, path string, handlers methods) {
	for _, method := range allMethods {
		h, ok := handlers[method]
		if !ok && method == http.MethodHead {
			h, ok = handlers[http.MethodGet]
		}
		if !ok {
			h = controllers.MethodNotAllowed
		}
		r.Handle(method, path, h)
	}
}
