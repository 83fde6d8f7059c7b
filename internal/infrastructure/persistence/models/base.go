package models

import (
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// StoreAggregateModel holds the persistence fields shared by every
// store-scoped aggregate root
type StoreAggregateModel struct {
	BaseModel
	StoreID uuid.UUID `gorm:"type:uuid;not null;index"`
	Version int       `gorm:"not null;default:1"`
}

// FromDomainStoreAggregateRoot populates the model from a domain aggregate root
func (m *StoreAggregateModel) FromDomainStoreAggregateRoot(a shared.StoreAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.StoreID = a.StoreID
	m.Version = a.Version
}

// PopulateStoreAggregateRoot copies the persisted fields onto a domain aggregate root
func (m *StoreAggregateModel) PopulateStoreAggregateRoot(a *shared.StoreAggregateRoot) {
	a.BaseEntity = m.BaseModel.ToDomain()
	a.StoreID = m.StoreID
	a.Version = m.Version
	a.MarkPersisted()
}
