package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	appcatalog "revu/internal/app/catalog"
	"revu/internal/app/dto"
	"revu/internal/domain/catalog"
)

type CatalogHandler struct {
	Service *appcatalog.Service
	Logger  *slog.Logger
}

func (h CatalogHandler) List(c *gin.Context) {
	kind, ok := kindFromPath(c)
	if !ok {
		return
	}
	entities, err := h.Service.List(c.Request.Context(), kind, filtersFromQuery(c, kind))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapEntities(kind, entities))
}

func (h CatalogHandler) Get(c *gin.Context) {
	kind, ok := kindFromPath(c)
	if !ok {
		return
	}
	entity, err := h.Service.Get(c.Request.Context(), kind, catalog.EntityID(c.Param("id")))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapEntity(kind, entity))
}

// kindFromPath resolves the :kind path segment against the kind registry.
func kindFromPath(c *gin.Context) (catalog.Kind, bool) {
	kind, ok := catalog.KindByCollection(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown catalog"})
		return catalog.Kind{}, false
	}
	return kind, true
}

// filtersFromQuery picks only the recognized query parameters for this kind;
// anything else is dropped, keeping listing URLs robust to unknown params.
func filtersFromQuery(c *gin.Context, kind catalog.Kind) catalog.Filters {
	return catalog.Filters{
		Classification: c.Query(kind.ClassificationKey),
		Maker:          c.Query(kind.MakerKey),
		Country:        c.Query("country"),
		Price:          c.Query("price"),
		Sort:           c.Query("sort"),
	}
}

func writeError(c *gin.Context, logger *slog.Logger, err error) {
	var status int
	switch {
	case errors.Is(err, catalog.ErrInvalidArgument), errors.Is(err, catalog.ErrInvalidRating):
		status = http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, catalog.ErrTransactionFailed):
		// The caller may retry the whole submission; nothing was written.
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}
	if logger != nil && status >= http.StatusInternalServerError {
		logger.Warn("request failed", "status", status, "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
