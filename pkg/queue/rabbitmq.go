package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"blogicum/pkg/config"
	"blogicum/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	NotificationQueueName = "blog_notification_queue"
	NotificationExchange  = "blog_notifications"
	RoutingKeyNewComment  = "new_comment"
)

// ErrInvalidTask marks a delivery that can never be processed. Such messages
// are dropped instead of requeued.
var ErrInvalidTask = errors.New("invalid notification task")

// Task is the JSON body published for every notification.
type Task struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	CommentID string    `json:"comment_id,omitempty"`
	ActorID   string    `json:"actor_id"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		NotificationExchange, // name
		"direct",             // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		NotificationQueueName, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		amqp.Table{
			"x-max-priority": 10,
		},
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		NotificationQueueName,
		RoutingKeyNewComment,
		NotificationExchange,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishNotificationTask publishes task under routingKey with its priority clamped to 0-10.
func (c *Client) PublishNotificationTask(routingKey string, task Task) error {
	body, err := EncodeTask(task)
	if err != nil {
		return err
	}

	err = c.channel.Publish(
		NotificationExchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Priority:     clampPriority(task.Priority),
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish message to exchange=%s, routing_key=%s: %v", NotificationExchange, routingKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published notification task to exchange=%s, routing_key=%s: %s", NotificationExchange, routingKey, string(body))
	return nil
}

func EncodeTask(task Task) ([]byte, error) {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	body, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task: %w", err)
	}
	return body, nil
}

// DecodeTask parses a delivery body. Tasks without a type, recipient or post
// are rejected with ErrInvalidTask.
func DecodeTask(body []byte) (Task, error) {
	var task Task
	if err := json.Unmarshal(body, &task); err != nil {
		return Task{}, fmt.Errorf("%w: %v", ErrInvalidTask, err)
	}
	if task.Type == "" || task.UserID == "" || task.PostID == "" {
		return Task{}, fmt.Errorf("%w: missing type, user_id or post_id", ErrInvalidTask)
	}
	return task, nil
}

// ConsumeNotificationTasks starts delivering queued tasks to handler in a
// background goroutine. Messages are acked after handler succeeds.
func (c *Client) ConsumeNotificationTasks(handler func(task Task) error) error {
	msgs, err := c.channel.Consume(
		NotificationQueueName, // queue
		"",                    // consumer
		false,                 // auto-ack
		false,                 // exclusive
		false,                 // no-local
		false,                 // no-wait
		nil,                   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from notification queue: %s", NotificationQueueName)

	go func() {
		for msg := range msgs {
			task, err := DecodeTask(msg.Body)
			if err == nil {
				err = handler(task)
			}
			if err != nil {
				requeue := !errors.Is(err, ErrInvalidTask)
				c.logger.Error("[RABBITMQ] Failed to process notification task (requeue=%t): %v, body=%s", requeue, err, string(msg.Body))
				msg.Nack(false, requeue)
				continue
			}
			msg.Ack(false)
		}
		c.logger.Info("[RABBITMQ] Notification consumer stopped")
	}()

	return nil
}

func clampPriority(p int) uint8 {
	if p < 0 {
		return 0
	}
	if p > 10 {
		return 10
	}
	return uint8(p)
}
