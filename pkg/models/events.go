package models

import "time"

// Action is the kind of mutation a ChangeEvent describes.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Routing keys used when change events are relayed to the message broker.
const (
	EventPostCreated = "post.created"
	EventPostUpdated = "post.updated"
	EventPostDeleted = "post.deleted"
)

// RoutingKey maps an action to its broker routing key.
func (a Action) RoutingKey() string {
	switch a {
	case ActionCreate:
		return EventPostCreated
	case ActionUpdate:
		return EventPostUpdated
	case ActionDelete:
		return EventPostDeleted
	}
	return "post.unknown"
}

// ChangeEvent is the transient notification emitted after a post mutation
// commits. Create and update events carry an immutable snapshot of the post;
// delete events carry only the post ID, and clients reconcile by refetching.
// Events are never persisted and never replayed to late observers.
type ChangeEvent struct {
	EventID       string    `json:"event_id"`
	CorrelationID string    `json:"correlation_id"`
	Action        Action    `json:"action"`
	Post          *Post     `json:"post,omitempty"`
	PostID        string    `json:"post_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
