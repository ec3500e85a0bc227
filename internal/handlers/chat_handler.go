package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"privdm_backend/internal/middleware"
	"privdm_backend/internal/models"
	"privdm_backend/internal/services"
	"privdm_backend/internal/services/dto"
)

type ChatHandler struct {
	*BaseHandler
	chatService *services.ChatService
}

func NewChatHandler(base *BaseHandler, chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		BaseHandler: base,
		chatService: chatService,
	}
}

func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	messages := rg.Group("/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.GET("", h.Messages)
		messages.POST("", h.SendMessage)
		messages.POST("/:id/expire", h.ExpireTimedMessage)
		messages.GET("/:id/media", h.Media)
	}

	adminMessages := rg.Group("/messages")
	adminMessages.Use(middleware.AuthMiddleware())
	adminMessages.Use(middleware.AdminMiddleware())
	{
		adminMessages.POST("/timed-image", h.SendTimedImage)
	}

	admin := rg.Group("")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/users", h.Users)
		admin.GET("/chats/active", h.ActiveChats)
	}
}

// Messages возвращает переписку. Не-админ видит свой журнал, админ обязан
// указать ?user=.
func (h *ChatHandler) Messages(c *gin.Context) {
	views, err := h.chatService.MessagesFor(
		middleware.RoleFromContext(c),
		middleware.UserIDFromContext(c),
		c.Query("user"),
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": views})
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	msg, err := h.chatService.SendMessage(c.Request.Context(), services.SendMessageInput{
		SenderRole:  middleware.RoleFromContext(c),
		SenderID:    middleware.UserIDFromContext(c),
		RecipientID: req.RecipientID,
		Content:     req.Content,
		Kind:        models.MessageKind(req.Kind),
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		PreviewURL:  req.PreviewURL,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

func (h *ChatHandler) SendTimedImage(c *gin.Context) {
	var req dto.SendTimedImageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	msg, err := h.chatService.SendTimedImage(c.Request.Context(), middleware.RoleFromContext(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

func (h *ChatHandler) ExpireTimedMessage(c *gin.Context) {
	if err := h.chatService.ExpireTimedMessage(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expired"})
}

// Media отдает URL вложения после проверки гейта.
func (h *ChatHandler) Media(c *gin.Context) {
	fileURL, err := h.chatService.MediaFor(
		middleware.RoleFromContext(c),
		middleware.UserIDFromContext(c),
		c.Param("id"),
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fileUrl": fileURL})
}

func (h *ChatHandler) Users(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": h.chatService.ListUsers()})
}

func (h *ChatHandler) ActiveChats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"userIds": h.chatService.ActiveChats()})
}
