package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"privdm_backend/internal/middleware"
	"privdm_backend/internal/services"
	"privdm_backend/internal/services/dto"
)

// ContentHandler - витрина премиум-контента и админское управление доступом.
type ContentHandler struct {
	*BaseHandler
	contentService *services.ContentService
}

func NewContentHandler(base *BaseHandler, contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{
		BaseHandler:    base,
		contentService: contentService,
	}
}

func (h *ContentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	content := rg.Group("/content")
	content.Use(middleware.AuthMiddleware())
	{
		content.GET("", h.List)
		content.POST("/:id/view", h.RecordView)
	}

	admin := rg.Group("/content")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
		admin.POST("/:id/grant/:userID", h.GrantAccess)
		admin.POST("/:id/revoke/:userID", h.RevokeAccess)
	}
}

func (h *ContentHandler) List(c *gin.Context) {
	items := h.contentService.List(
		middleware.RoleFromContext(c),
		middleware.UserIDFromContext(c),
	)
	c.JSON(http.StatusOK, gin.H{"content": items})
}

func (h *ContentHandler) Create(c *gin.Context) {
	var req dto.CreateContentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.contentService.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"content": item})
}

func (h *ContentHandler) Update(c *gin.Context) {
	var req dto.UpdateContentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.contentService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": item})
}

func (h *ContentHandler) Delete(c *gin.Context) {
	if err := h.contentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content deleted"})
}

func (h *ContentHandler) GrantAccess(c *gin.Context) {
	if err := h.contentService.GrantAccess(c.Request.Context(), c.Param("id"), c.Param("userID")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Access granted"})
}

func (h *ContentHandler) RevokeAccess(c *gin.Context) {
	if err := h.contentService.RevokeAccess(c.Request.Context(), c.Param("id"), c.Param("userID")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Access revoked"})
}

// RecordView учитывает просмотр после проверки гейта. Админские просмотры
// не считаются.
func (h *ContentHandler) RecordView(c *gin.Context) {
	count, err := h.contentService.RecordView(
		c.Request.Context(),
		middleware.RoleFromContext(c),
		middleware.UserIDFromContext(c),
		c.Param("id"),
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"viewCount": count})
}
