// Package notification consumes domain events and records user-facing
// notifications. Delivery channels beyond the log are stubbed.
package notification

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/task-manager/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// NotificationLog represents a logged notification.
type NotificationLog struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Channel   string    `json:"channel"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationModule subscribes to task and friend events.
type NotificationModule struct {
	notifications []NotificationLog
	mu            sync.RWMutex
}

var _ mono.Module = (*NotificationModule)(nil)
var _ mono.EventConsumerModule = (*NotificationModule)(nil)

func NewModule() *NotificationModule {
	return &NotificationModule{
		notifications: make([]NotificationLog, 0),
	}
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskStatusUpdatedV1, m.handleTaskStatusUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskStatusUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskSoftDeletedV1, m.handleTaskSoftDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskSoftDeleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.SubtasksGeneratedV1, m.handleSubtasksGenerated, m); err != nil {
		return fmt.Errorf("failed to register SubtasksGenerated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.FriendInviteCreatedV1, m.handleFriendInviteCreated, m); err != nil {
		return fmt.Errorf("failed to register FriendInviteCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.FriendAddedV1, m.handleFriendAdded, m); err != nil {
		return fmt.Errorf("failed to register FriendAdded consumer: %w", err)
	}

	log.Printf("[notification] Registered event consumers: TaskCreated, TaskStatusUpdated, TaskSoftDeleted, SubtasksGenerated, FriendInviteCreated, FriendAdded")
	return nil
}

func (m *NotificationModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task created: %s - %s", event.TaskID, event.Title)
	m.logNotification(event.TaskID, "task_created", fmt.Sprintf("New task '%s' created for user %s", event.Title, event.OwnerID))
	return nil
}

func (m *NotificationModule) handleTaskStatusUpdated(_ context.Context, event events.TaskStatusUpdatedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task %s moved %s -> %s", event.TaskID, event.From, event.To)
	m.logNotification(event.TaskID, "task_status_updated", fmt.Sprintf("Task %s moved from %s to %s", event.TaskID, event.From, event.To))
	return nil
}

func (m *NotificationModule) handleTaskSoftDeleted(_ context.Context, event events.TaskSoftDeletedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task deleted: %s by user %s", event.TaskID, event.OwnerID)
	m.logNotification(event.TaskID, "task_deleted", fmt.Sprintf("Task %s deleted", event.TaskID))
	return nil
}

func (m *NotificationModule) handleSubtasksGenerated(_ context.Context, event events.SubtasksGeneratedEvent, _ *mono.Msg) error {
	log.Printf("[notification] %d subtasks generated for task %s", event.Count, event.TaskID)
	m.logNotification(event.TaskID, "subtasks_generated", fmt.Sprintf("%d subtasks generated for task %s", event.Count, event.TaskID))
	return nil
}

// handleFriendInviteCreated would hand the invite link to an email provider.
// Email delivery is stubbed: the link is only logged.
func (m *NotificationModule) handleFriendInviteCreated(_ context.Context, event events.FriendInviteCreatedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Invite email stub for %s: %s (expires %s)",
		event.Email, event.InviteLink, event.ExpiresAt.Format(time.RFC3339))
	m.logNotification(event.InviteID, "friend_invite", fmt.Sprintf("Invite sent to %s", event.Email))
	return nil
}

func (m *NotificationModule) handleFriendAdded(_ context.Context, event events.FriendAddedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Users %s and %s are now friends", event.UserID, event.FriendID)
	m.logNotification(event.UserID, "friend_added", fmt.Sprintf("You are now friends with %s", event.FriendID))
	return nil
}

func (m *NotificationModule) logNotification(id, notificationType, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notifications = append(m.notifications, NotificationLog{
		ID:        id,
		Type:      notificationType,
		Message:   message,
		Channel:   "event",
		Timestamp: time.Now(),
	})
}

// GetNotifications returns a snapshot of the logged notifications.
func (m *NotificationModule) GetNotifications() []NotificationLog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]NotificationLog, len(m.notifications))
	copy(result, m.notifications)
	return result
}

func (m *NotificationModule) Start(_ context.Context) error {
	log.Println("[notification] Module started - listening for task and friend events")
	return nil
}

func (m *NotificationModule) Stop(_ context.Context) error {
	log.Println("[notification] Module stopped")
	return nil
}
