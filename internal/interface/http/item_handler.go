package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/second-brain-api/internal/application"
	"github.com/oksasatya/second-brain-api/pkg/response"
	"github.com/oksasatya/second-brain-api/pkg/validation"
)

type ItemHandler struct {
	Svc    *application.ItemService
	Logger *logrus.Logger
}

func NewItemHandler(svc *application.ItemService, logger *logrus.Logger) *ItemHandler {
	return &ItemHandler{Svc: svc, Logger: logger}
}

type createItemRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags" binding:"required"`
	BrainID string   `json:"brainId" binding:"required,uuid"`
	URL     string   `json:"url" binding:"omitempty,url"`
	Pinned  bool     `json:"pinned"`
}

// CreateTweet handles POST /item/tweet.
func (h *ItemHandler) CreateTweet(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	id, err := h.Svc.CreateTweet(c.Request.Context(), c.GetString("userID"), application.CreateTweetInput{
		BrainID: req.BrainID,
		Title:   req.Title,
		Content: req.Content,
		URL:     req.URL,
		Pinned:  req.Pinned,
		Tags:    req.Tags,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id}, "item created", nil)
}

// Search handles GET /items/search.
func (h *ItemHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), c.GetString("userID"), q, size)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

// Tags handles GET /tags.
func (h *ItemHandler) Tags(c *gin.Context) {
	tags, err := h.Svc.ListTags(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(tags))
	for _, t := range tags {
		out = append(out, gin.H{"name": t.Name, "color": t.Color})
	}
	response.Success(c, http.StatusOK, out, "tags", nil)
}
