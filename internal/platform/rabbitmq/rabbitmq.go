package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeKind = "topic"

// HandlerFunc handles single message body. Returned error nacks the message without requeue.
type HandlerFunc func(ctx context.Context, message []byte) error

// Option is custom configuration of RabbitMQ.
type Option func(mq *RabbitMQ)

// RabbitMQ publishes import commands to topic exchange and consumes them from queue.
type RabbitMQ struct {
	channel   *amqp.Channel
	exchange  string
	prefetch  int
	isRunning chan struct{}
}

// NewRabbitMQ opens channel on connection and returns new RabbitMQ.
func NewRabbitMQ(connection *amqp.Connection, exchange string, ops ...Option) (*RabbitMQ, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("can't open channel: %w", err)
	}
	mq := &RabbitMQ{
		channel:  channel,
		exchange: exchange,
	}

	for _, op := range ops {
		op(mq)
	}

	if mq.prefetch > 0 {
		if err := channel.Qos(mq.prefetch, 0, false); err != nil {
			return nil, fmt.Errorf("can't set prefetch count: %w", err)
		}
	}

	return mq, nil
}

// Declare declares durable topic exchange and durable queue bound to it with routing key.
// Declarations are idempotent, so it's safe to call it on every start.
func (mq *RabbitMQ) Declare(queue, routingKey string) error {
	if err := mq.channel.ExchangeDeclare(mq.exchange, exchangeKind, true, false, false, false, nil); err != nil {
		return fmt.Errorf("can't declare exchange %s: %w", mq.exchange, err)
	}

	if _, err := mq.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("can't declare queue %s: %w", queue, err)
	}

	if err := mq.channel.QueueBind(queue, routingKey, mq.exchange, false, nil); err != nil {
		return fmt.Errorf("can't bind queue %s to %s: %w", queue, routingKey, err)
	}

	return nil
}

// Publish publishes persistent JSON message to routing key.
func (mq *RabbitMQ) Publish(ctx context.Context, routingKey string, message []byte) error {
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         message,
	}

	return mq.channel.PublishWithContext(
		ctx,
		mq.exchange,
		routingKey,
		false,
		false,
		msg,
	)
}

// Consume consumes messages from queue and passes deliveries to provided handler function.
// It returns channel with errors from handler function and consuming process.
// Function works asynchronously, it consumes messages in background as long as context is not closed.
func (mq *RabbitMQ) Consume(ctx context.Context, queue string, handler HandlerFunc) (<-chan error, error) {
	consumerID, err := uuid.NewUUID()
	if err != nil {
		return nil, fmt.Errorf("can't create consumer ID: %w", err)
	}

	deliveries, err := mq.channel.Consume(
		queue,
		consumerID.String(),
		false, // manual ack, handler decides
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("can't start consuming: %w", err)
	}

	consumingErrors := make(chan error)
	mq.isRunning = make(chan struct{})
	go func() {
		defer close(mq.isRunning)
		mq.consumeMessages(ctx, consumerID.String(), deliveries, consumingErrors, handler)
	}()

	return consumingErrors, nil
}

func (mq *RabbitMQ) consumeMessages(
	ctx context.Context,
	consumerTag string,
	deliveries <-chan amqp.Delivery,
	consumingErrors chan error,
	handler HandlerFunc,
) {
	for {
		var delivery amqp.Delivery
		var ok bool
		select {
		case <-ctx.Done():
			// stop broker from pushing more messages, unacked ones are redelivered
			_ = mq.channel.Cancel(consumerTag, false)
			return
		case delivery, ok = <-deliveries:
			if !ok {
				return
			}
		}

		if err := handler(ctx, delivery.Body); err != nil {
			_ = pushError(ctx, fmt.Errorf("message %s: %w", delivery.MessageId, err), consumingErrors)
			if err := mq.settle(ctx, delivery.Nack(false, false), "nack", consumingErrors); err != nil {
				return
			}
			continue
		}
		if err := mq.settle(ctx, delivery.Ack(false), "ack", consumingErrors); err != nil {
			return
		}
	}
}

// settle reports ack or nack failure, it returns error only when reporting itself failed.
func (mq *RabbitMQ) settle(ctx context.Context, err error, action string, consumingErrors chan error) error {
	if err == nil {
		return nil
	}
	return pushError(ctx, fmt.Errorf("can't %s message: %w", action, err), consumingErrors)
}

// Done returns channel which will be closed when consuming will be finished.
func (mq *RabbitMQ) Done() chan struct{} {
	return mq.isRunning
}

// Close closes underlying channel.
func (mq *RabbitMQ) Close() error {
	return mq.channel.Close()
}

// WithPrefetch limits number of unacknowledged deliveries sent to consumer.
func WithPrefetch(count int) Option {
	return func(mq *RabbitMQ) {
		mq.prefetch = count
	}
}

func pushError(ctx context.Context, err error, errChan chan error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case errChan <- err:
	}
	return nil
}
