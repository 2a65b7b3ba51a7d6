package notification

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/notification-service/internal/api/dto"
	"github.com/aliskhannn/notification-service/internal/api/respond"
	"github.com/aliskhannn/notification-service/internal/model"
)

// Client-facing error messages.
var (
	ErrInvalidBody    = errors.New("Invalid request body")
	ErrMissingFields  = errors.New("Missing required fields")
	ErrInvalidType    = errors.New("Invalid notification type. Must be email, sms, or in-app")
	ErrInternalServer = errors.New("Internal server error")
)

const acceptedMessage = "Notification accepted for delivery"

// notificationService defines the interface that the Handler depends on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks
type notificationService interface {
	CreateNotification(ctx context.Context, userID string, typ model.Type, content string) (model.Notification, error)
	GetUserNotifications(ctx context.Context, userID string) ([]model.Notification, error)
}

// Handler handles HTTP requests related to notifications.
//
// It admits new notifications for background delivery and lists the
// notification history of a user.
type Handler struct {
	service   notificationService
	validator *validator.Validate
}

// NewHandler creates a new Handler instance.
func NewHandler(s notificationService, v *validator.Validate) *Handler {
	return &Handler{service: s, validator: v}
}

// Create handles POST /notifications.
//
// It validates the body, normalises the notification type and responds with
// 202 as soon as the notification is queued; the delivery outcome is only
// visible through the user's notification list.
func (h *Handler) Create(c *ginext.Context) {
	var req dto.CreateRequest

	// An empty body is treated like an empty object so that it fails field validation.
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		zlog.Logger.Warn().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, ErrMissingFields)
		return
	}

	typ, err := model.ParseType(req.Type)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("user_id", req.UserID).Msg("invalid notification type")
		respond.Fail(c.Writer, http.StatusBadRequest, ErrInvalidType)
		return
	}

	n, err := h.service.CreateNotification(c.Request.Context(), req.UserID, typ, req.Content)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", req.UserID).Msg("failed to create notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, ErrInternalServer)
		return
	}

	respond.Accepted(c.Writer, dto.CreateResponse{
		Message:        acceptedMessage,
		NotificationID: n.ID,
	})
}

// GetUserNotifications handles GET /users/:id/notifications.
//
// Unknown users get an empty list.
func (h *Handler) GetUserNotifications(c *ginext.Context) {
	userID := c.Param("id")

	notifications, err := h.service.GetUserNotifications(c.Request.Context(), userID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", userID).Msg("failed to get notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, ErrInternalServer)
		return
	}

	if notifications == nil {
		notifications = []model.Notification{}
	}

	respond.OK(c.Writer, notifications)
}

// Health handles GET /health.
func (h *Handler) Health(c *ginext.Context) {
	respond.OK(c.Writer, map[string]string{"status": "ok"})
}
