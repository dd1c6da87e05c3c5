package domain

import (
	"fmt"
	"time"
)

// Aggregate names the catalog entity kind an audit event refers to
type Aggregate string

const (
	AggregateEmployee        Aggregate = "Employee"
	AggregateRadioUnit       Aggregate = "RadioUnit"
	AggregateOperatorAccount Aggregate = "OperatorAccount"
)

// ParseAggregate validates an aggregate name
func ParseAggregate(s string) (Aggregate, error) {
	switch a := Aggregate(s); a {
	case AggregateEmployee, AggregateRadioUnit, AggregateOperatorAccount:
		return a, nil
	default:
		return "", fmt.Errorf("unknown aggregate %q: %w", s, ErrInvalidInput)
	}
}

// Action is the catalog mutation recorded by an audit event
type Action string

const (
	ActionCreated Action = "CREATED"
	ActionUpdated Action = "UPDATED"
	ActionDeleted Action = "DELETED"
)

// Snapshot is a field-name to value view of an entity
type Snapshot map[string]any

// Pick returns a snapshot restricted to the given keys
func (s Snapshot) Pick(keys ...string) Snapshot {
	out := make(Snapshot, len(keys))
	for _, k := range keys {
		if v, ok := s[k]; ok {
			out[k] = v
		}
	}
	return out
}

// AdminChangeEvent is an append-only record of one catalog mutation
type AdminChangeEvent struct {
	Aggregate   Aggregate
	Action      Action
	KeyRef      string
	At          time.Time
	ActorUserID uint
	Before      Snapshot
	After       Snapshot
	Reason      *string
}
