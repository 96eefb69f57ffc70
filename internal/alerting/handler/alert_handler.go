package handler

import (
	"context"
	"errors"

	"github.com/FJR5209/Dashboard-backend/internal/alerting/domain"
	"github.com/FJR5209/Dashboard-backend/internal/alerting/dto"
	"github.com/FJR5209/Dashboard-backend/internal/alerting/service"
	authdomain "github.com/FJR5209/Dashboard-backend/internal/auth/domain"
	apperrors "github.com/FJR5209/Dashboard-backend/internal/errors"
	"github.com/FJR5209/Dashboard-backend/internal/feed"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const defaultAlertListLimit = 100

// UserGetter resolves the user a manual evaluation targets. Satisfied by
// the auth user service.
type UserGetter interface {
	Get(ctx context.Context, id string) (*authdomain.User, error)
}

// TickRunner runs one poll cycle on demand. Satisfied by the poller.
type TickRunner interface {
	RunTick(ctx context.Context) bool
}

type AlertHandler struct {
	alertService *service.AlertService
	users        UserGetter
	feed         feed.Fetcher
	poller       TickRunner
	logger       *zap.Logger
}

func NewAlertHandler(alertService *service.AlertService, users UserGetter, fetcher feed.Fetcher,
	poller TickRunner, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
		users:        users,
		feed:         fetcher,
		poller:       poller,
		logger:       logger,
	}
}

// Trigger evaluates one explicit reading for one user, persisting an alert
// and queueing the email when the limits are breached.
func (h *AlertHandler) Trigger(c *fiber.Ctx) error {
	var input dto.TriggerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	if input.UserID == "" || input.Temperature == nil || input.Humidity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": apperrors.ErrMissingFields.Error(),
		})
	}

	user, err := h.users.Get(c.Context(), input.UserID)
	if err != nil {
		return h.respondError(c, err)
	}

	reading := service.Reading{
		Temperature: *input.Temperature,
		Humidity:    *input.Humidity,
	}

	breached, err := h.alertService.EvaluateAndDispatch(c.Context(), user, reading)
	if err != nil {
		return h.respondError(c, err)
	}

	if !breached {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "no limit exceeded",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "alert dispatched",
	})
}

// ListAlerts exposes the persisted alert history, the single source of
// truth for what has fired. A userId query narrows it to one user.
func (h *AlertHandler) ListAlerts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultAlertListLimit)

	var alerts []domain.Alert
	var err error
	if userID := c.Query("userId"); userID != "" {
		alerts, err = h.alertService.ListAlertsByUser(c.Context(), userID, limit)
	} else {
		alerts, err = h.alertService.ListAlerts(c.Context(), limit)
	}
	if err != nil {
		return h.respondError(c, err)
	}

	out := make([]dto.AlertOutput, 0, len(alerts))
	for i := range alerts {
		out = append(out, dto.NewAlertOutput(&alerts[i]))
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

// FeedData proxies the newest feed samples.
func (h *AlertHandler) FeedData(c *fiber.Ctx) error {
	samples, err := h.feed.FetchLatest(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}
	if len(samples) == 0 {
		return h.respondError(c, apperrors.ErrNoFeedData)
	}

	return c.Status(fiber.StatusOK).JSON(samples)
}

// RunFetch triggers one poll cycle on demand.
func (h *AlertHandler) RunFetch(c *fiber.Ctx) error {
	ran := h.poller.RunTick(c.Context())
	if !ran {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "a poll cycle is already running",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "data collected and evaluated",
	})
}

func (h *AlertHandler) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrMissingFields):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrNoFeedData):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		h.logger.Error("alert request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
