package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	appcatalog "revu/internal/app/catalog"
	"revu/internal/app/dto"
	"revu/internal/app/ratings"
	"revu/internal/domain/catalog"
)

type RatingsHandler struct {
	Aggregator *ratings.Aggregator
	Service    *appcatalog.Service
	Logger     *slog.Logger
}

// submitRatingRequest deliberately has no timestamp field: creation time is
// always assigned server-side.
type submitRatingRequest struct {
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
	PhotoURL string `json:"photo_url"`
}

func (h RatingsHandler) List(c *gin.Context) {
	kind, ok := kindFromPath(c)
	if !ok {
		return
	}
	items, err := h.Service.Ratings(c.Request.Context(), kind, catalog.EntityID(c.Param("id")))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapRatings(items))
}

func (h RatingsHandler) Submit(c *gin.Context) {
	kind, ok := kindFromPath(c)
	if !ok {
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req submitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.Aggregator.AddReview(c.Request.Context(), kind, catalog.EntityID(c.Param("id")), ratings.ReviewInput{
		Rating:   req.Rating,
		Text:     req.Text,
		UserID:   user.UserID,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapRating(rating))
}
