package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"privdm_backend/internal/middleware"
	"privdm_backend/internal/services"
	"privdm_backend/internal/services/dto"
)

type FeedbackHandler struct {
	*BaseHandler
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(base *BaseHandler, feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		BaseHandler:     base,
		feedbackService: feedbackService,
	}
}

func (h *FeedbackHandler) RegisterRoutes(rg *gin.RouterGroup) {
	feedback := rg.Group("/feedback")
	feedback.Use(middleware.AuthMiddleware())
	{
		feedback.GET("", h.List)
	}

	admin := rg.Group("/feedback")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("", h.Add)
		admin.POST("/:id/verify", h.Verify)
		admin.DELETE("/:id", h.Delete)
		admin.GET("/phrase", h.GeneratePhrase)
	}
}

func (h *FeedbackHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"feedback": h.feedbackService.List()})
}

func (h *FeedbackHandler) Add(c *gin.Context) {
	var req dto.AddFeedbackRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	fb, err := h.feedbackService.Add(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"feedback": fb})
}

func (h *FeedbackHandler) Verify(c *gin.Context) {
	if err := h.feedbackService.Verify(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback verified"})
}

func (h *FeedbackHandler) Delete(c *gin.Context) {
	if err := h.feedbackService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted"})
}

func (h *FeedbackHandler) GeneratePhrase(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"phrase": h.feedbackService.GeneratePhrase()})
}
