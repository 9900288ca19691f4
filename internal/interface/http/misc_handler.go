package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/second-brain-api/internal/application"
	"github.com/oksasatya/second-brain-api/pkg/response"
)

type MiscHandler struct {
	Prefill *application.PrefillService
	Logger  *logrus.Logger
	Version string
	started time.Time
}

func NewMiscHandler(pf *application.PrefillService, logger *logrus.Logger, version string) *MiscHandler {
	return &MiscHandler{Prefill: pf, Logger: logger, Version: version, started: time.Now()}
}

// PrefillURL handles GET /prefill?url=. Always 200; missing metadata is an
// empty object.
func (h *MiscHandler) PrefillURL(c *gin.Context) {
	raw := c.Query("url")
	u, err := url.Parse(raw)
	if err != nil || raw == "" || (u.Scheme != "http" && u.Scheme != "https") {
		response.Error[any](c, http.StatusBadRequest, "invalid url", nil)
		return
	}
	meta := h.Prefill.Lookup(c.Request.Context(), raw)
	response.Success(c, http.StatusOK, meta, "prefill", nil)
}

// Health handles GET /health.
func (h *MiscHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"status":  "ok",
		"uptime":  time.Since(h.started).Seconds(),
		"version": h.Version,
		"now":     time.Now().Format(time.RFC3339),
	}, "health", nil)
}
