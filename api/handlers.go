package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gcbaptista/mfg-search/internal/analytics"
	internalErrors "github.com/gcbaptista/mfg-search/internal/errors"
	"github.com/gcbaptista/mfg-search/internal/logger"
	"github.com/gcbaptista/mfg-search/internal/metrics"
	"github.com/gcbaptista/mfg-search/model"
	"github.com/gcbaptista/mfg-search/services"
)

// API holds dependencies for API handlers, primarily the loaded query client.
type API struct {
	client    services.QueryClient
	analytics *analytics.Service
	metrics   *metrics.Metrics
	startedAt time.Time
}

// NewAPI creates a new API handler structure. m may be nil to disable metrics.
func NewAPI(client services.QueryClient, m *metrics.Metrics) *API {
	api := &API{
		client:    client,
		analytics: analytics.NewService(client),
		metrics:   m,
		startedAt: time.Now(),
	}
	if m != nil {
		info := client.IndexInfo()
		m.SetIndexSize(info.DocumentCount, info.TermCount)
	}
	return api
}

// SetupRoutes defines all the routes of the query server.
func SetupRoutes(router *gin.Engine, client services.QueryClient, m *metrics.Metrics) *API {
	apiHandler := NewAPI(client, m)

	router.Use(RequestIDMiddleware(), CORSMiddleware(), RequestLoggerMiddleware())
	if m != nil {
		router.Use(MetricsMiddleware(m))
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}
	router.SetHTMLTemplate(newTemplates())
	router.NoRoute(func(c *gin.Context) {
		SendError(c, http.StatusNotFound, ErrorCodeRouteNotFound, "No route for "+c.Request.Method+" "+c.Request.URL.Path)
	})

	// Browser routes
	router.GET("/", apiHandler.PageHandler)           // Full search page, ?q= pre-fills
	router.GET("/results", apiHandler.ResultsHandler) // Result list fragment

	// Operational routes
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// JSON routes
	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/search", apiHandler.SearchHandler)             // View model for ?q=
		apiRoutes.GET("/companies/*ref", apiHandler.GetCompanyHandler) // One record by reference
		apiRoutes.GET("/index", apiHandler.IndexInfoHandler)           // Index summary
	}

	return apiHandler
}

// Analytics exposes the query analytics collected by the handlers.
func (api *API) Analytics() *analytics.Service {
	return api.analytics
}

// render evaluates a query and records it for analytics and metrics.
func (api *API) render(c *gin.Context, query string) model.ViewModel {
	startTime := time.Now()
	vm := api.client.Render(query)
	responseTime := time.Since(startTime)

	vm.QueryID = uuid.New().String()

	api.analytics.TrackSearchEvent(model.SearchEvent{
		QueryID:      vm.QueryID,
		Query:        query,
		State:        vm.State,
		ResponseTime: responseTime,
		ResultCount:  vm.Total,
	})
	if api.metrics != nil {
		api.metrics.ObserveSearch(vm.State, vm.Total, responseTime)
	}

	logger.FromContext(c.Request.Context()).Debug("query rendered",
		"query_id", vm.QueryID,
		"state", vm.State,
		"results", vm.Total,
		"duration", responseTime)
	return vm
}

// queryParam reads and validates q, sending the error response itself when invalid.
func queryParam(c *gin.Context) (string, bool) {
	query := c.Query("q")
	if result := ValidateQuery(query); result.HasErrors() {
		SendValidationError(c, result)
		return "", false
	}
	return query, true
}

// PageHandler serves the full search page.
func (api *API) PageHandler(c *gin.Context) {
	query, ok := queryParam(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, pageTemplateName, api.render(c, query))
}

// ResultsHandler serves the result list as an HTML fragment.
// The page swaps the fragment in on every keystroke, so a query that fails
// validation still gets a results fragment in the invalid_query state.
func (api *API) ResultsHandler(c *gin.Context) {
	query := c.Query("q")
	if result := ValidateQuery(query); result.HasErrors() {
		logger.FromContext(c.Request.Context()).Debug("query rejected",
			"length", len(query),
			"errors", result.Errors)
		c.HTML(http.StatusOK, resultsTemplateName, model.ViewModel{
			Query: query,
			State: model.ViewStateInvalidQuery,
			Cards: []model.CompanyCard{},
		})
		return
	}
	c.HTML(http.StatusOK, resultsTemplateName, api.render(c, query))
}

// SearchHandler returns the view model for a query as JSON.
// A query that cannot be parsed is not an error: it yields the invalid_query state.
func (api *API) SearchHandler(c *gin.Context) {
	query, ok := queryParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, api.render(c, query))
}

// GetCompanyHandler retrieves one record by its reference key.
func (api *API) GetCompanyHandler(c *gin.Context) {
	ref := strings.TrimPrefix(c.Param("ref"), "/")

	if result := ValidateReference(ref); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	doc, err := api.client.GetDocument(ref)
	if err != nil {
		if errors.Is(err, internalErrors.ErrDocumentNotFound) {
			SendDocumentNotFoundError(c, ref)
			return
		}
		SendInternalError(c, "get company", err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// IndexInfoHandler summarizes the loaded index.
func (api *API) IndexInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.client.IndexInfo())
}

// GetAnalyticsHandler returns the query analytics summary.
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.analytics.GetSummary())
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	info := api.client.IndexInfo()
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"service":        "mfg-search",
		"document_count": info.DocumentCount,
		"uptime_seconds": int64(time.Since(api.startedAt).Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
