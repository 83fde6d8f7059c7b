package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides identity and timestamps
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *BaseEntity) GetID() uuid.UUID        { return e.ID }
func (e *BaseEntity) GetCreatedAt() time.Time { return e.CreatedAt }
func (e *BaseEntity) GetUpdatedAt() time.Time { return e.UpdatedAt }

// Touch bumps UpdatedAt
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// StoreAggregateRoot is an aggregate root owned by a single storefront.
// Every repository query is scoped by StoreID.
type StoreAggregateRoot struct {
	BaseEntity
	StoreID      uuid.UUID
	Version      int
	persisted    int
	domainEvents []DomainEvent
}

// NewStoreAggregateRoot creates a new store-scoped aggregate root
func NewStoreAggregateRoot(storeID uuid.UUID) StoreAggregateRoot {
	return StoreAggregateRoot{
		BaseEntity: NewBaseEntity(),
		StoreID:    storeID,
		Version:    1,
	}
}

// GetVersion returns the aggregate version for optimistic locking
func (a *StoreAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number and touches UpdatedAt
func (a *StoreAggregateRoot) IncrementVersion() {
	a.Version++
	a.Touch()
}

// PersistedVersion returns the version last read from or written to
// storage. It is 0 for an aggregate that has never been stored.
func (a *StoreAggregateRoot) PersistedVersion() int {
	return a.persisted
}

// MarkPersisted records the current version as the stored one
func (a *StoreAggregateRoot) MarkPersisted() {
	a.persisted = a.Version
}

// AddDomainEvent adds a domain event to be published
func (a *StoreAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *StoreAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *StoreAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}
