package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"flightmail-service/internal/domain/entity"
	"flightmail-service/internal/usecase"
	"flightmail-service/pkg/flightparser"
	"flightmail-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TripService is the use case surface the HTTP API needs
type TripService interface {
	ProcessEmail(ctx context.Context, email *entity.Email) (*entity.Trip, error)
	Parse(ctx context.Context, from, subject, body string) flightparser.ParserResult
	ListTrips(ctx context.Context, userEmail string, limit int) ([]*entity.Trip, error)
}

type InboundHandler struct {
	service TripService
	logger  logger.Logger
}

type inboundEmailRequest struct {
	MessageID string `json:"messageId" form:"message_id"`
	From      string `json:"from" form:"from"`
	To        string `json:"to" form:"to"`
	Subject   string `json:"subject" form:"subject"`
	Text      string `json:"text" form:"text"`
	HTML      string `json:"html" form:"html"`
}

type parseRequest struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

type tripsResponse struct {
	Trips []*entity.Trip `json:"trips"`
	Count int            `json:"count"`
}

func NewInboundHandler(service TripService, logger logger.Logger) *InboundHandler {
	return &InboundHandler{service: service, logger: logger}
}

func (h *InboundHandler) Register(router *gin.RouterGroup) {
	router.POST("/inbound/email", h.inboundEmail)
	router.POST("/parse", h.parse)
	router.GET("/trips", h.listTrips)
}

// inboundEmail accepts a forwarded email as JSON or as a multipart/urlencoded
// form (the shape inbound-parse webhooks post).
func (h *InboundHandler) inboundEmail(c *gin.Context) {
	var req inboundEmailRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.From) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from is required"})
		return
	}
	if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.HTML) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text or html body is required"})
		return
	}

	email := &entity.Email{
		EmailID:    req.MessageID,
		Channel:    entity.ChannelWebhook,
		From:       req.From,
		To:         req.To,
		Subject:    req.Subject,
		Body:       req.Text,
		HTMLBody:   req.HTML,
		ReceivedAt: time.Now().UTC(),
	}
	if email.EmailID == "" {
		email.EmailID = webhookMessageID(req)
	}

	trip, err := h.service.ProcessEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, usecase.ErrAlreadyProcessed) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "emailId": email.EmailID})
			return
		}
		h.logger.Error("Inbound email processing failed", "emailID", email.EmailID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process email"})
		return
	}

	c.JSON(http.StatusCreated, trip)
}

func (h *InboundHandler) parse(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.service.Parse(c.Request.Context(), req.From, req.Subject, req.Body))
}

func (h *InboundHandler) listTrips(c *gin.Context) {
	user := c.Query("user")
	if strings.TrimSpace(user) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user query parameter is required"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	trips, err := h.service.ListTrips(c.Request.Context(), user, limit)
	if err != nil {
		h.logger.Error("Listing trips failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list trips"})
		return
	}

	c.JSON(http.StatusOK, tripsResponse{Trips: trips, Count: len(trips)})
}

// webhookMessageID derives a stable ID so a retried webhook delivery is
// recognised as the same email.
func webhookMessageID(req inboundEmailRequest) string {
	h := sha256.New()
	for _, part := range []string{req.From, req.To, req.Subject, req.Text, req.HTML} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "webhook-" + hex.EncodeToString(h.Sum(nil))[:32]
}
