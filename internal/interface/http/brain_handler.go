package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/second-brain-api/internal/application"
	"github.com/oksasatya/second-brain-api/internal/domain/entity"
	"github.com/oksasatya/second-brain-api/pkg/response"
	"github.com/oksasatya/second-brain-api/pkg/validation"
)

type BrainHandler struct {
	Svc    *application.BrainService
	Logger *logrus.Logger
}

func NewBrainHandler(svc *application.BrainService, logger *logrus.Logger) *BrainHandler {
	return &BrainHandler{Svc: svc, Logger: logger}
}

type createBrainRequest struct {
	Name        string `json:"name" binding:"required,min=3"`
	Description string `json:"description"`
}

// Create handles POST /brain.
func (h *BrainHandler) Create(c *gin.Context) {
	var req createBrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	id, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), req.Name, req.Description)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id}, "brain created", nil)
}

func navJSON(n entity.BrainNav) gin.H {
	return gin.H{
		"id":                      n.ID,
		"name":                    n.Name,
		"is_default":              n.IsDefault,
		entity.ContentTypeTweet:   n.HasTweet,
		entity.ContentTypeYouTube: n.HasYouTube,
		entity.ContentTypeLink:    n.HasLink,
		entity.ContentTypeNote:    n.HasNote,
		entity.ContentTypeOther:   n.HasOther,
	}
}

// Nav handles GET /brain-nav.
func (h *BrainHandler) Nav(c *gin.Context) {
	nav, err := h.Svc.Nav(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(nav))
	for _, n := range nav {
		out = append(out, navJSON(n))
	}
	response.Success(c, http.StatusOK, out, "brain nav", nil)
}

// Detail handles GET /brain/:brainId.
func (h *BrainHandler) Detail(c *gin.Context) {
	d, err := h.Svc.Detail(c.Request.Context(), c.GetString("userID"), c.Param("brainId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":          d.ID,
		"name":        d.Name,
		"description": d.Description,
		"counts":      d.Counts,
	}, "brain detail", nil)
}
