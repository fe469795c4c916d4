// Package notify queues customer e-mails in Redis and delivers them over SMTP
// from a background worker.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/ipqbbqgyy/parking-system/internal/logger"
	"github.com/ipqbbqgyy/parking-system/internal/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	queueKey       = "parking:emails"
	failedQueueKey = "parking:emails:failed"
	maxTries       = 3

	TypeReservation = "reservation"
	TypeReceipt     = "receipt"
)

type EmailJob struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Config struct {
	From     string
	FromName string
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
}

// SendFunc delivers one message. It matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Service struct {
	redis      *redis.Client
	cfg        Config
	send       SendFunc
	retryDelay time.Duration
}

func New(cfg Config, rdb *redis.Client) *Service {
	return &Service{
		redis:      rdb,
		cfg:        cfg,
		send:       smtp.SendMail,
		retryDelay: 5 * time.Second,
	}
}

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

func (s *Service) Send(ctx context.Context, emailType, to, subject, body string) error {
	if to == "" {
		return nil
	}

	job := EmailJob{
		Type:    emailType,
		To:      to,
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", to, err)
		return err
	}

	logger.Infof("Email queued: %s to %s", subject, to)
	return nil
}

// Start blocks, delivering queued mail until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("Email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	logger.Debugf("Sending email to %s (attempt %d)", job.To, job.Tries)
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send email to %s: %v", job.To, err)

		if job.Tries < maxTries {
			s.requeue(ctx, job)
		} else {
			metrics.RecordEmail(job.Type, "failed")
			s.saveFailed(ctx, job, err)
		}
		return
	}

	metrics.RecordEmail(job.Type, "success")
	logger.Infof("Email sent successfully to %s", job.To)
}

func (s *Service) requeue(ctx context.Context, job EmailJob) {
	select {
	case <-ctx.Done():
	case <-time.After(s.retryDelay):
	}

	data, _ := json.Marshal(job)
	s.redis.LPush(context.WithoutCancel(ctx), queueKey, data)
	logger.Infof("Retrying email to %s (attempt %d)", job.To, job.Tries+1)
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "Content-Type: text/plain; charset=UTF-8\r\n"
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.cfg.SMTPUser != "" && s.cfg.SMTPPass != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	return s.send(addr, auth, s.cfg.From, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(ctx context.Context, job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.WithoutCancel(ctx), failedQueueKey, data)
	logger.Errorf("Email moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.EmailQueueLength.Set(float64(length))
	return length
}

func (s *Service) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

func (s *Service) Close() error {
	return s.redis.Close()
}

const timeLayout = "Jan 2, 2006 at 15:04 MST"

func (s *Service) ReservationConfirmed(ctx context.Context, to, orderNumber, plate, spot string, useTime, expiresAt time.Time) error {
	subject := "Reservation confirmed - " + orderNumber
	body := fmt.Sprintf(`Hello,

Your parking reservation is confirmed.

Order: %s
Plate: %s
Spot: %s
Arrive from: %s
Held until: %s

The reservation is released automatically if the vehicle has not checked in by then.

- Parking Office`, orderNumber, plate, spot, useTime.Format(timeLayout), expiresAt.Format(timeLayout))

	return s.Send(ctx, TypeReservation, to, subject, body)
}

func (s *Service) PaymentReceipt(ctx context.Context, to, orderNumber, plate string, fee, minutes decimal.Decimal, exitTime time.Time) error {
	subject := "Parking receipt - " + orderNumber
	body := fmt.Sprintf(`Hello,

Thank you for parking with us.

Order: %s
Plate: %s
Duration: %s min
Amount paid: %s
Exit time: %s

- Parking Office`, orderNumber, plate, minutes.StringFixed(0), fee.StringFixed(2), exitTime.Format(timeLayout))

	return s.Send(ctx, TypeReceipt, to, subject, body)
}
