package core

// DomainEvent is a change to the catalog decided by a Decide function.
type DomainEvent interface {
	EventType() string
}

// DomainEvents is a slice of DomainEvent.
type DomainEvents = []DomainEvent
