package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/FJR5209/Dashboard-backend/internal/alerting/domain"
	authdomain "github.com/FJR5209/Dashboard-backend/internal/auth/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	alertMailSubject = "Alerta de Limites Excedidos"
	alertMailBody    = "Os limites definidos foram excedidos:\nTemperatura atual: %.1f°C\nUmidade atual: %.1f%%"

	maxMailAttempts  = 3
	mailRetryBackoff = 2 * time.Second
)

type mailJob struct {
	to      string
	subject string
	body    string
	userID  string
}

// AlertService evaluates readings against user limits and dispatches
// alerts: the Alert record is persisted synchronously, the email goes
// through a background queue so a slow mail provider never stalls the
// caller.
type AlertService struct {
	alerts domain.AlertRepository
	mailer domain.Mailer
	policy BreachPolicy
	logger *zap.Logger

	mailTimeout time.Duration
	queue       chan mailJob
	wg          sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

func NewAlertService(alerts domain.AlertRepository, mailer domain.Mailer, policy BreachPolicy,
	mailTimeout time.Duration, queueSize int, logger *zap.Logger) *AlertService {
	return &AlertService{
		alerts:      alerts,
		mailer:      mailer,
		policy:      policy,
		logger:      logger,
		mailTimeout: mailTimeout,
		queue:       make(chan mailJob, queueSize),
	}
}

// Start launches the mail delivery worker.
func (s *AlertService) Start() {
	s.wg.Add(1)
	go s.deliveryWorker()
}

// Stop closes the queue and waits for in-flight deliveries. A dispatch
// racing Stop loses its email (logged as a drop) but never panics.
func (s *AlertService) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		close(s.queue)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// EvaluateAndDispatch applies the breach predicate for one user and one
// reading. On breach it persists the Alert and enqueues the notification
// email, returning true. Persistence failure is logged but does not stop
// the email: the user still gets warned.
func (s *AlertService) EvaluateAndDispatch(ctx context.Context, user *authdomain.User, reading Reading) (bool, error) {
	limits := Limits{TempLimit: user.TempLimit, HumidityLimit: user.HumidityLimit}
	if !Breach(s.policy, limits, reading) {
		return false, nil
	}

	alert := &domain.Alert{
		ID:            uuid.New().String(),
		UserID:        user.ID,
		TempLimit:     user.TempLimit,
		HumidityLimit: user.HumidityLimit,
		Channel:       domain.ChannelEmail,
		Temperature:   reading.Temperature,
		Humidity:      reading.Humidity,
		CreatedAt:     time.Now(),
	}

	if err := s.alerts.Create(ctx, alert); err != nil {
		s.logger.Error("failed to persist alert",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
	}

	s.enqueue(mailJob{
		to:      user.Email,
		subject: alertMailSubject,
		body:    fmt.Sprintf(alertMailBody, reading.Temperature, reading.Humidity),
		userID:  user.ID,
	})

	return true, nil
}

// enqueue hands the job to the delivery worker. The mutex pairs with Stop
// so the send can never hit a closed channel.
func (s *AlertService) enqueue(job mailJob) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		s.logger.Warn("dispatcher stopped, dropping alert email",
			zap.String("user_id", job.userID),
		)
		return
	}

	select {
	case s.queue <- job:
	default:
		s.logger.Warn("mail queue full, dropping alert email",
			zap.String("user_id", job.userID),
		)
	}
}

func (s *AlertService) ListAlerts(ctx context.Context, limit int) ([]domain.Alert, error) {
	return s.alerts.List(ctx, limit)
}

// ListAlertsByUser narrows the history to one user's alerts.
func (s *AlertService) ListAlertsByUser(ctx context.Context, userID string, limit int) ([]domain.Alert, error) {
	return s.alerts.ListByUser(ctx, userID, limit)
}

// deliveryWorker drains the queue, retrying each send a bounded number of
// times. Delivery outcomes are observable in the log.
func (s *AlertService) deliveryWorker() {
	defer s.wg.Done()

	for job := range s.queue {
		var err error
		for attempt := 1; attempt <= maxMailAttempts; attempt++ {
			err = s.send(job)
			if err == nil {
				break
			}
			if attempt < maxMailAttempts {
				time.Sleep(time.Duration(attempt) * mailRetryBackoff)
			}
		}

		if err != nil {
			s.logger.Error("alert email delivery failed",
				zap.String("user_id", job.userID),
				zap.String("to", job.to),
				zap.Int("attempts", maxMailAttempts),
				zap.Error(err),
			)
			continue
		}

		s.logger.Info("alert email delivered",
			zap.String("user_id", job.userID),
			zap.String("to", job.to),
		)
	}
}

func (s *AlertService) send(job mailJob) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.mailTimeout)
	defer cancel()

	return s.mailer.Send(ctx, job.to, job.subject, job.body)
}
