package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a kind of domain event.
type EventType string

const (
	EventUserRegistered         EventType = "USER_REGISTERED"
	EventUserUpdated            EventType = "USER_UPDATED"
	EventUserStatusToggled      EventType = "USER_STATUS_TOGGLED"
	EventUserDeleted            EventType = "USER_DELETED"
	EventUserGroupCreated       EventType = "USER_GROUP_CREATED"
	EventUserGroupUpdated       EventType = "USER_GROUP_UPDATED"
	EventUserGroupDeleted       EventType = "USER_GROUP_DELETED"
	EventUserGroupRoleAdded     EventType = "USER_GROUP_ROLE_ADDED"
	EventUserGroupRoleRemoved   EventType = "USER_GROUP_ROLE_REMOVED"
	EventUserGroupMemberAdded   EventType = "USER_GROUP_MEMBER_ADDED"
	EventUserGroupMemberRemoved EventType = "USER_GROUP_MEMBER_REMOVED"
)

// Aggregate names used in events and the event store.
const (
	AggregateUser      = "User"
	AggregateUserGroup = "UserGroup"
)

// Event records a state change on an aggregate. Events are queued inside the
// aggregate during mutation and drained with TakeEvents after a successful save.
type Event struct {
	ID            uuid.UUID
	AggregateID   uuid.UUID
	AggregateName string
	Type          EventType
	Data          map[string]interface{}
	CreatedAt     time.Time
}

// eventRecorder is embedded in aggregates to queue domain events.
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) record(aggregateID uuid.UUID, aggregateName string, typ EventType, data map[string]interface{}) {
	r.events = append(r.events, Event{
		ID:            uuid.New(),
		AggregateID:   aggregateID,
		AggregateName: aggregateName,
		Type:          typ,
		Data:          data,
		CreatedAt:     time.Now().UTC(),
	})
}

// TakeEvents returns the queued events and clears the internal queue, so the
// aggregate holds no hidden mutable state after dispatch.
func (r *eventRecorder) TakeEvents() []Event {
	evs := r.events
	r.events = nil
	return evs
}

// PendingEvents returns the number of queued events without draining them.
func (r *eventRecorder) PendingEvents() int { return len(r.events) }
