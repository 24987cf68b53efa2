package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/DrGermanius/Storefront/internal/model"
)

const notificationsExchange = "order_notifications"

type INotifier interface {
	Notify(context.Context, model.Notification) error
}

var messages = map[model.NotificationKind]string{
	model.NotificationSuccess:            "Order %s is now %s",
	model.NotificationNotAllowed:         "Order %s cannot be moved to %s",
	model.NotificationUnknownStatus:      "Order %s has an unrecognised status, please contact support",
	model.NotificationPersistenceFailure: "Order %s was not updated, please try again",
	model.NotificationForbidden:          "Order %s does not belong to you",
}

func newNotification(kind model.NotificationKind, o model.Order, to model.Status, actor model.Actor) model.Notification {
	n := model.Notification{
		Kind:    kind,
		OrderID: o.ID,
		Code:    o.Code,
		Actor:   actor.String(),
		From:    o.Status,
		To:      to,
	}

	switch kind {
	case model.NotificationSuccess, model.NotificationNotAllowed:
		n.Message = fmt.Sprintf(messages[kind], o.Code, to)
	default:
		n.Message = fmt.Sprintf(messages[kind], o.Code)
	}
	return n
}

type LogNotifier struct {
	logger *zap.SugaredLogger
}

func NewLogNotifier(logger *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n LogNotifier) Notify(_ context.Context, msg model.Notification) error {
	n.logger.Infow(msg.Message,
		"kind", msg.Kind,
		"orderID", msg.OrderID,
		"actor", msg.Actor,
		"from", msg.From,
		"to", msg.To,
	)
	return nil
}

// AMQPChannel is the part of *amqp.Channel the notifier uses.
type AMQPChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPNotifier fans notifications out to every UI gateway bound to order_notifications.
type AMQPNotifier struct {
	ch     AMQPChannel
	conn   *amqp.Connection
	logger *zap.SugaredLogger
}

func DialAMQPNotifier(uri string, logger *zap.SugaredLogger) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	n, err := NewAMQPNotifier(ch, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	n.conn = conn
	return n, nil
}

func NewAMQPNotifier(ch AMQPChannel, logger *zap.SugaredLogger) (*AMQPNotifier, error) {
	if err := ch.ExchangeDeclare(notificationsExchange, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &AMQPNotifier{ch: ch, logger: logger}, nil
}

func (n *AMQPNotifier) Notify(ctx context.Context, msg model.Notification) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = n.ch.PublishWithContext(ctx, notificationsExchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Type:        string(msg.Kind),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	n.logger.Debugf("notification %s published for order %d", msg.Kind, msg.OrderID)
	return nil
}

func (n *AMQPNotifier) Close() error {
	if err := n.ch.Close(); err != nil {
		return err
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
