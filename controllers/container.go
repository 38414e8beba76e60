package controllers

import (
	"net/http"
	"time"

	"favorites-restful/auth"
	"favorites-restful/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"
)

// NewContainer registers every web service, the OpenAPI document at
// /apidocs.json and a /health probe.
func NewContainer(userService services.UserService, catalog services.CatalogService, issuer *auth.TokenIssuer, logger *zap.Logger) *restful.Container {
	container := restful.NewContainer()
	container.Filter(RequestLogger(logger))

	users := NewUserController(userService, issuer, logger)
	catalogs := NewCatalogController(catalog, issuer, logger)
	login := NewAuthController(userService, issuer, logger)

	container.Add(login.WebService())
	container.Add(users.WebService())
	container.Add(catalogs.CharactersWebService())
	container.Add(catalogs.LocationsWebService())

	health := new(restful.WebService)
	health.Path("/health").Produces(restful.MIME_JSON)
	health.Route(health.GET("").To(func(_ *restful.Request, response *restful.Response) {
		writeJSON(response, http.StatusOK, map[string]string{"status": "ok"})
	}).Doc("Liveness probe"))
	container.Add(health)

	container.Add(restfulspec.NewOpenAPIService(restfulspec.Config{
		WebServices: container.RegisteredWebServices(),
		APIPath:     "/apidocs.json",
	}))

	return container
}

// RequestLogger logs every request once it has been handled.
func RequestLogger(logger *zap.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		startTime := time.Now()

		chain.ProcessFilter(req, resp)

		logger.Info("Request",
			zap.String("client_ip", req.Request.RemoteAddr),
			zap.String("method", req.Request.Method),
			zap.String("path", req.Request.URL.Path),
			zap.Int("status_code", resp.StatusCode()),
			zap.Duration("latency", time.Since(startTime)),
			zap.String("user_agent", req.Request.UserAgent()),
		)
	}
}
