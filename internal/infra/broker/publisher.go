package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"experience-booking/internal/pkg/errs"
	"experience-booking/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitPublisher sends booking events to a durable queue on the default exchange.
type RabbitPublisher struct {
	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	logger *slog.Logger
}

func NewRabbitPublisher(url, queue string, logger *slog.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.Wrap(err, "rabbitmq: dial failed")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "rabbitmq: channel open failed")
	}

	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "rabbitmq: queue declare failed")
	}

	return &RabbitPublisher{
		conn:   conn,
		ch:     ch,
		queue:  queue,
		logger: logger,
	}, nil
}

func (p *RabbitPublisher) PublishBookingCreated(ctx context.Context, event shared.BookingCreatedEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		msg,
	); err != nil {
		return errs.Wrap(err, "rabbitmq: publish failed")
	}

	p.logger.Debug("booking event published", slog.String("queue", p.queue), slog.String("reference", event.Reference))
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}

func newPublishing(event shared.BookingCreatedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, errs.Wrap(err, "rabbitmq: marshal event failed")
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.Reference,
		Type:         "booking.created",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}, nil
}

// LogPublisher is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishBookingCreated(_ context.Context, event shared.BookingCreatedEvent) error {
	p.logger.Info("booking.created",
		slog.String("reference", event.Reference),
		slog.String("experience_id", event.ExperienceID),
		slog.String("date", event.Date),
		slog.String("time", event.Time),
		slog.Int("quantity", event.Quantity),
		slog.Int64("total", event.Total),
	)
	return nil
}
