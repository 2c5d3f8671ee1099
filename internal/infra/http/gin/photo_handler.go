package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	appcatalog "revu/internal/app/catalog"
	"revu/internal/domain/catalog"
)

type PhotoHandler struct {
	Service *appcatalog.Service
	Logger  *slog.Logger
}

// Update accepts a multipart image, stores it in object storage and persists
// the public URL on the entity's photo field.
func (h PhotoHandler) Update(c *gin.Context) {
	kind, ok := kindFromPath(c)
	if !ok {
		return
	}
	if _, ok := requireUser(c); !ok {
		return
	}
	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	url, err := h.Service.UpdatePhoto(
		c.Request.Context(),
		kind,
		catalog.EntityID(c.Param("id")),
		header.Filename,
		file,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo": url})
}
