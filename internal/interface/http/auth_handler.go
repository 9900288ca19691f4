package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/second-brain-api/internal/application"
	"github.com/oksasatya/second-brain-api/pkg/helpers"
	"github.com/oksasatya/second-brain-api/pkg/response"
	"github.com/oksasatya/second-brain-api/pkg/validation"
)

type AuthHandler struct {
	Svc       *application.AuthService
	Logger    *logrus.Logger
	GCS       *storage.Client
	GCSBucket string
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, gcs *storage.Client, gcsBucket string) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, GCS: gcs, GCSBucket: gcsBucket}
}

type signUpRequest struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=3"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=3"`
}

type exchangeRequest struct {
	Assertion string `json:"assertion" binding:"required"`
	Provider  string `json:"provider" binding:"required,oneof=google github"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SignUp handles POST /signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.SignUp(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": "User created successfully"}, "user created", nil)
}

// SignIn handles POST /signin.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	pair, err := h.Svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, pair, "signed in", nil)
}

// Me handles GET /me.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.Me(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"name":       u.Name,
		"email":      u.Email,
		"avatar_url": u.AvatarURL,
	}, "profile", nil)
}

// Exchange handles POST /auth/exchange: a front-end assertion becomes a
// backend token pair.
func (h *AuthHandler) Exchange(c *gin.Context) {
	var req exchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	pair, err := h.Svc.Exchange(c.Request.Context(), req.Assertion, req.Provider)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, pair, "exchanged", nil)
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, pair, "refreshed", nil)
}

// UploadAvatar handles POST /me/avatar: multipart upload to GCS, then records
// the public URL on the profile.
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString("userID")

	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing file", nil)
		return
	}
	if h.GCS == nil || h.GCSBucket == "" {
		response.Error[any](c, http.StatusServiceUnavailable, "avatar storage not configured", nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", uid, uuid.NewString()+ext))
	contentType := fh.Header.Get("Content-Type")

	url, err := helpers.UploadObject(c.Request.Context(), h.GCS, h.GCSBucket, objectPath, contentType, f)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", uid).Error("avatar upload failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "upload failed", nil)
		return
	}
	if err := h.Svc.SetAvatar(c.Request.Context(), uid, url); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar updated", nil)
}
