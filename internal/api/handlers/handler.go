// Package handlers adapts the page services to gin. Every handler binds its
// input, calls one service method and maps the error through respondError.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"qa-warehouse-api-server/internal/api/middleware"
	"qa-warehouse-api-server/internal/auth"
	"qa-warehouse-api-server/internal/query"
	"qa-warehouse-api-server/internal/report"
	"qa-warehouse-api-server/internal/service"
	"qa-warehouse-api-server/internal/store"
	"qa-warehouse-api-server/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// versioned is the body of every action that changes an existing record.
type versioned struct {
	Version int64 `json:"version" binding:"required,min=1"`
}

// reserved query parameters; everything else is a filter.
var listParams = map[string]bool{"q": true, "page": true, "pageSize": true, "scope": true, "clamp": true}

func respondError(c *gin.Context, err error) {
	var ve *workflow.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ve.Message})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": store.ErrConflict.Error()})
	case errors.Is(err, workflow.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrAppendOnly):
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": err.Error()})
	case errors.Is(err, query.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionRevoked),
		errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUploadDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// bind decodes the JSON body into req, answering 400 on failure.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return false
	}
	return true
}

func intParam(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return n, nil
}

// listQuery reads q, page, pageSize, scope and clamp; the remaining
// query parameters become exact-match filters.
func listQuery(c *gin.Context) (service.ListQuery, error) {
	page, err := intParam(c, "page")
	if err != nil {
		return service.ListQuery{}, err
	}
	size, err := intParam(c, "pageSize")
	if err != nil {
		return service.ListQuery{}, err
	}
	q := service.ListQuery{
		Search:   c.Query("q"),
		Page:     page,
		PageSize: size,
		Clamp:    c.Query("clamp") == "true",
		Filters:  map[string]string{},
	}
	switch c.Query("scope") {
	case "", "active":
		q.Scope = store.Active
	case "archived":
		q.Scope = store.Archived
	case "all":
		q.Scope = store.All
	default:
		return service.ListQuery{}, errors.New("scope must be active, archived or all")
	}
	for key, values := range c.Request.URL.Query() {
		if listParams[key] || len(values) == 0 || values[0] == "All" {
			continue
		}
		q.Filters[key] = values[0]
	}
	return q, nil
}

func actorName(c *gin.Context) string { return c.GetString(middleware.KeyUserName) }
func actorID(c *gin.Context) string   { return c.GetString(middleware.KeyUserID) }
func sessionID(c *gin.Context) string { return c.GetString(middleware.KeySessionID) }

func sendWorkbook(c *gin.Context, f *excelize.File, filename string) {
	defer f.Close()
	c.Header("Content-Type", report.ContentType)
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")
	if err := f.Write(c.Writer); err != nil {
		c.Error(err)
	}
}

// listHandler serves a paged list view.
func listHandler[T any](list func(context.Context, service.ListQuery) (service.Listing[T], error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := listQuery(c)
		if err != nil {
			badRequest(c, err)
			return
		}
		page, err := list(c.Request.Context(), q)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// getHandler serves a single record by its :id.
func getHandler[T any](get func(context.Context, string) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// versionedHandler runs an action whose body is only the expected version,
// such as archive, restore or start.
func versionedHandler[T any](act func(ctx context.Context, id string, version int64) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req versioned
		if !bind(c, &req) {
			return
		}
		rec, err := act(c.Request.Context(), c.Param("id"), req.Version)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// exportHandler streams a filtered list view as XLSX.
func exportHandler(export func(context.Context, service.ListQuery) (*excelize.File, string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := listQuery(c)
		if err != nil {
			badRequest(c, err)
			return
		}
		f, name, err := export(c.Request.Context(), q)
		if err != nil {
			respondError(c, err)
			return
		}
		sendWorkbook(c, f, name)
	}
}

// kpiHandler serves the KPI cards of a page.
func kpiHandler[T any](kpis func(context.Context) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := kpis(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
