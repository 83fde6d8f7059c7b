package finance

import (
	"context"
	"sync"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/catalog"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/partner"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/settings"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*finance.Account, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter finance.AccountFilter) ([]finance.Account, int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]finance.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) ListAllForStore(ctx context.Context, storeID uuid.UUID) ([]finance.Account, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]finance.Account), args.Error(1)
}

func (m *MockAccountRepository) NextNumber(ctx context.Context, storeID uuid.UUID) (uint64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockAccountRepository) HasChildren(ctx context.Context, storeID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, storeID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *finance.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	return m.Called(ctx, storeID, id).Error(0)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*finance.Transaction, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter finance.TransactionFilter) ([]finance.Transaction, int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]finance.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) SumByAccount(ctx context.Context, storeID uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

func (m *MockTransactionRepository) CountByAccount(ctx context.Context, storeID, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, storeID, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) Save(ctx context.Context, txn *finance.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	return m.Called(ctx, storeID, id).Error(0)
}

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByIDForStore(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id uuid.UUID) (*finance.Document, error) {
	args := m.Called(ctx, storeID, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter finance.DocumentFilter) ([]finance.Document, int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]finance.Document), args.Get(1).(int64), args.Error(2)
}

func (m *MockDocumentRepository) NextSequence(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind) (uint64, error) {
	args := m.Called(ctx, storeID, kind)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockDocumentRepository) ExistsByNumber(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, number string) (bool, error) {
	args := m.Called(ctx, storeID, kind, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) Save(ctx context.Context, doc *finance.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentRepository) DeleteForStore(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id uuid.UUID) error {
	return m.Called(ctx, storeID, kind, id).Error(0)
}

func (m *MockDocumentRepository) StoresWithDueDocuments(ctx context.Context, kind finance.DocumentKind, before time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, kind, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*partner.Contact, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Contact), args.Error(1)
}

func (m *MockContactRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter partner.ContactFilter) ([]partner.Contact, int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]partner.Contact), args.Get(1).(int64), args.Error(2)
}

func (m *MockContactRepository) Save(ctx context.Context, contact *partner.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *MockContactRepository) DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	return m.Called(ctx, storeID, id).Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter catalog.ProductFilter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ExistingIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, storeID, ids)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, storeID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, storeID, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	return m.Called(ctx, storeID, id).Error(0)
}

// staticSettings always returns the same settings
type staticSettings struct {
	settings *settings.StoreSettings
}

func (s staticSettings) Current(context.Context, uuid.UUID) (*settings.StoreSettings, error) {
	return s.settings, nil
}

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Close() error {
	return nil
}

// memoryIdempotency is a mutex-guarded IdempotencyStore without expiry
type memoryIdempotency struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newMemoryIdempotency() *memoryIdempotency {
	return &memoryIdempotency{keys: make(map[string]struct{})}
}

func (m *memoryIdempotency) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.keys[key]; ok {
		return false, nil
	}
	m.keys[key] = struct{}{}
	return true, nil
}

func (m *memoryIdempotency) IsProcessed(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.keys[key]
	return ok, nil
}

func (m *memoryIdempotency) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}

func (m *memoryIdempotency) Close() error { return nil }

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}
