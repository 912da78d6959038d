package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blogicum/pkg/logger"
	"blogicum/pkg/queue"
	"blogicum/services/notification/internal/entity"
	"blogicum/services/notification/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	maxStoredNotifications = 100
	notificationTTL        = 30 * 24 * time.Hour
)

type NotificationUseCase interface {
	HandleTask(task queue.Task) error
	GetNotifications(userID string, limit, offset int) ([]entity.Notification, int64, error)
	DeleteNotificationsByPostID(userID, postID string) (int, error)
	ClearNotifications(userID string) error
	Stream(ctx context.Context, userID string, send func(payload []byte) error) error
}

type notificationUseCase struct {
	userRepo    persistent.UserRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewNotificationUseCase(userRepo persistent.UserRepository, redisClient *redis.Client, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		userRepo:    userRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

// notificationsKey names both the stored list and the live pub/sub channel.
func notificationsKey(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}

// HandleTask turns a queued task into a stored notification for its recipient.
func (uc *notificationUseCase) HandleTask(task queue.Task) error {
	switch task.Type {
	case entity.TypeNewComment:
		return uc.handleNewComment(task)
	default:
		uc.logger.Error("[NOTIFICATION HANDLER] Unknown notification type: %s", task.Type)
		return fmt.Errorf("%w: %s: %w", queue.ErrInvalidTask, task.Type, entity.ErrUnknownType)
	}
}

func (uc *notificationUseCase) handleNewComment(task queue.Task) error {
	actor := "Someone"
	if task.ActorID != "" {
		if username, err := uc.userRepo.GetUsername(task.ActorID); err != nil {
			uc.logger.Warn("[NOTIFICATION HANDLER] Failed to get username for %s: %v", task.ActorID, err)
		} else {
			actor = username
		}
	}

	createdAt := task.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	notification := &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    task.UserID,
		Title:     "New comment",
		Message:   fmt.Sprintf("%s commented on your post", actor),
		Type:      entity.TypeNewComment,
		PostID:    task.PostID,
		CommentID: task.CommentID,
		ActorID:   task.ActorID,
		CreatedAt: createdAt,
	}

	if err := uc.store(notification); err != nil {
		return err
	}

	uc.logger.Info("[NOTIFICATION HANDLER] Stored new_comment notification for user %s, post %s", task.UserID, task.PostID)
	return nil
}

func (uc *notificationUseCase) store(notification *entity.Notification) error {
	notificationJSON, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	ctx := context.Background()
	key := notificationsKey(notification.UserID)

	pipe := uc.redisClient.TxPipeline()
	pipe.LPush(ctx, key, notificationJSON)
	pipe.LTrim(ctx, key, 0, maxStoredNotifications-1)
	pipe.Expire(ctx, key, notificationTTL)
	pipe.Publish(ctx, key, notificationJSON)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}

func (uc *notificationUseCase) GetNotifications(userID string, limit, offset int) ([]entity.Notification, int64, error) {
	ctx := context.Background()
	key := notificationsKey(userID)

	raw, err := uc.redisClient.LRange(ctx, key, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}

	notifications := make([]entity.Notification, 0, len(raw))
	for _, item := range raw {
		var notification entity.Notification
		if err := json.Unmarshal([]byte(item), &notification); err != nil {
			uc.logger.Warn("Skipping malformed notification for user %s: %v", userID, err)
			continue
		}
		notifications = append(notifications, notification)
	}

	total, err := uc.redisClient.LLen(ctx, key).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	return notifications, total, nil
}

// DeleteNotificationsByPostID removes every stored notification about postID.
func (uc *notificationUseCase) DeleteNotificationsByPostID(userID, postID string) (int, error) {
	ctx := context.Background()
	key := notificationsKey(userID)

	raw, err := uc.redisClient.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get notifications: %w", err)
	}

	deleted := 0
	for _, item := range raw {
		var notification entity.Notification
		if err := json.Unmarshal([]byte(item), &notification); err != nil || notification.PostID != postID {
			continue
		}
		removed, err := uc.redisClient.LRem(ctx, key, 1, item).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to delete notification: %w", err)
		}
		deleted += int(removed)
	}

	return deleted, nil
}

func (uc *notificationUseCase) ClearNotifications(userID string) error {
	if err := uc.redisClient.Del(context.Background(), notificationsKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}

// Stream forwards notifications published for userID to send until ctx is
// done or send fails.
func (uc *notificationUseCase) Stream(ctx context.Context, userID string, send func(payload []byte) error) error {
	pubsub := uc.redisClient.Subscribe(ctx, notificationsKey(userID))
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			if err := send([]byte(msg.Payload)); err != nil {
				return fmt.Errorf("failed to send notification: %w", err)
			}
		}
	}
}
