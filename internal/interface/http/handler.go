package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-stylist/internal/domain/conversation"
	"github.com/yanqian/weather-stylist/internal/domain/genjob"
	"github.com/yanqian/weather-stylist/internal/domain/outfit"
	"github.com/yanqian/weather-stylist/internal/domain/photos"
	"github.com/yanqian/weather-stylist/internal/domain/weather"
	apperrors "github.com/yanqian/weather-stylist/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
//
// The root-level proxy endpoints keep the flat JSON shapes the chat frontend
// already speaks; the /api/v1 chat endpoints use the shared error envelope.
type Handler struct {
	weatherSvc weather.Service
	photoSvc   photos.Service
	jobSvc     genjob.Service
	chatSvc    conversation.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(weatherSvc weather.Service, photoSvc photos.Service, jobSvc genjob.Service, chatSvc conversation.Service, logger *slog.Logger) *Handler {
	return &Handler{
		weatherSvc: weatherSvc,
		photoSvc:   photoSvc,
		jobSvc:     jobSvc,
		chatSvc:    chatSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type unsplashRequest struct {
	Query string `json:"query"`
}

// UnsplashProxy resolves an item query to an image URL through the layered
// photo lookup. Only the generic last-resort URL is reported as a miss.
func (h *Handler) UnsplashProxy(c *gin.Context) {
	var req unsplashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	url := h.photoSvc.FindImage(c.Request.Context(), req.Query)
	if url == photos.GenericFallbackURL {
		c.JSON(http.StatusNotFound, gin.H{"error": "no image found for query", "fallback": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

type weatherRequest struct {
	Location string `json:"location"`
}

type weatherResponse struct {
	Weather    weather.Snapshot      `json:"weather"`
	Outfit     outfit.Recommendation `json:"outfit"`
	DemoMode   bool                  `json:"demoMode"`
	DemoReason string                `json:"demoReason,omitempty"`
}

// WeatherProxy returns current conditions plus the derived outfit
// recommendation for one location.
func (h *Handler) WeatherProxy(c *gin.Context) {
	var req weatherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location is required"})
		return
	}

	result, err := h.weatherSvc.GetWeather(c.Request.Context(), req.Location)
	if err != nil {
		if apperrors.IsCode(err, "invalid_input") {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMessage(err)})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": errMessage(err)})
		return
	}

	c.JSON(http.StatusOK, weatherResponse{
		Weather:    result.Snapshot,
		Outfit:     outfit.Recommend(result.Snapshot),
		DemoMode:   result.DemoMode,
		DemoReason: result.DemoReason,
	})
}

// GenerateOutfitImage starts an asynchronous outfit photo job and returns the
// opaque task id for status polling.
func (h *Handler) GenerateOutfitImage(c *gin.Context) {
	var req genjob.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	taskID, err := h.jobSvc.Start(c.Request.Context(), req)
	if err != nil {
		if apperrors.IsCode(err, "invalid_input") {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMessage(err)})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to start image generation",
			"details": errMessage(err),
			"code":    "generation_error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"taskId": taskID, "message": "Image generation started"})
}

// OutfitImageStatus reports one status observation for a generation job.
func (h *Handler) OutfitImageStatus(c *gin.Context) {
	taskID := c.Query("taskId")
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taskId is required"})
		return
	}

	snap, err := h.jobSvc.Status(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": errMessage(err)})
		return
	}
	c.JSON(http.StatusOK, snap)
}

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// Chat runs one conversational turn and returns the appended reply entry.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	msg, err := h.chatSvc.Ask(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		status := http.StatusInternalServerError
		code := "chat_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, msg)
}

type chatPhotoRequest struct {
	SessionID string `json:"sessionId"`
	genjob.Request
}

// ChatOutfitPhoto starts a photo generation job inside a chat session. The
// returned entry is updated in place as the job progresses.
func (h *Handler) ChatOutfitPhoto(c *gin.Context) {
	var req chatPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	msg, err := h.chatSvc.GenerateOutfitPhoto(c.Request.Context(), req.SessionID, req.Request)
	if err != nil {
		status := http.StatusInternalServerError
		code := "chat_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "generation_error"):
			status = http.StatusBadGateway
			code = "generation_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, msg)
}

// ChatHistory returns the ordered transcript for a session.
func (h *Handler) ChatHistory(c *gin.Context) {
	items, err := h.chatSvc.History(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "chat_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": items})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
