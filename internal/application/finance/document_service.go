package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/catalog"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/partner"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/settings"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettingsProvider returns the effective settings of a store
type SettingsProvider interface {
	Current(ctx context.Context, storeID uuid.UUID) (*settings.StoreSettings, error)
}

// DocumentService manages invoices and bills
type DocumentService struct {
	docRepo        finance.DocumentRepository
	contactRepo    partner.ContactRepository
	productRepo    catalog.ProductRepository
	settings       SettingsProvider
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	publisher      shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// DocumentServiceOption configures a DocumentService
type DocumentServiceOption func(*DocumentService)

// WithIdempotencyStore enables Idempotency-Key handling on submit
func WithIdempotencyStore(store shared.IdempotencyStore) DocumentServiceOption {
	return func(s *DocumentService) {
		s.idempotency = store
	}
}

// WithEventPublisher sets where document events are sent after saving
func WithEventPublisher(publisher shared.EventPublisher) DocumentServiceOption {
	return func(s *DocumentService) {
		s.publisher = publisher
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) DocumentServiceOption {
	return func(s *DocumentService) {
		s.logger = logger
	}
}

// WithIdempotencyTTL sets how long submission keys are remembered
func WithIdempotencyTTL(ttl time.Duration) DocumentServiceOption {
	return func(s *DocumentService) {
		if ttl > 0 {
			s.idempotencyTTL = ttl
		}
	}
}

// WithClock overrides the time source used for overdue checks
func WithClock(now func() time.Time) DocumentServiceOption {
	return func(s *DocumentService) {
		s.now = now
	}
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	docRepo finance.DocumentRepository,
	contactRepo partner.ContactRepository,
	productRepo catalog.ProductRepository,
	settingsProvider SettingsProvider,
	opts ...DocumentServiceOption,
) *DocumentService {
	s := &DocumentService{
		docRepo:        docRepo,
		contactRepo:    contactRepo,
		productRepo:    productRepo,
		settings:       settingsProvider,
		publisher:      shared.NoopPublisher{},
		logger:         zap.NewNop(),
		now:            time.Now,
		idempotencyTTL: shared.DefaultIdempotencyTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create creates a draft invoice or bill
func (s *DocumentService) Create(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, req CreateDocumentRequest) (*DocumentResponse, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", fmt.Sprintf("Unknown document kind %q", kind))
	}
	storeSettings, err := s.settings.Current(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if err := s.checkContact(ctx, storeID, kind, req.ContactID); err != nil {
		return nil, err
	}

	number, err := s.resolveNumber(ctx, storeID, kind, req.Number, storeSettings)
	if err != nil {
		return nil, err
	}
	currency := valueobject.Currency(req.Currency)
	if currency == "" {
		currency = storeSettings.Currency
	}

	doc, err := finance.NewDocument(storeID, kind, number, req.ContactID, req.IssueDate, req.DueDate, currency)
	if err != nil {
		return nil, err
	}
	doc.Notes = strings.TrimSpace(req.Notes)

	inputs, err := s.resolveItems(ctx, storeID, storeSettings, req.Items, "items")
	if err != nil {
		return nil, err
	}
	for i, input := range inputs {
		if _, err := doc.AddItem(input); err != nil {
			return nil, prefixValidation(err, fmt.Sprintf("items[%d]", i))
		}
	}
	if err := doc.SetTransportCost(req.TransportCost); err != nil {
		return nil, err
	}

	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Info("document created",
		zap.String("store_id", storeID.String()),
		zap.String("kind", string(kind)),
		zap.String("number", doc.Number),
		zap.Int64("total_amount", doc.TotalAmount))

	response := ToDocumentResponse(doc)
	return &response, nil
}

// GetByID retrieves a document
func (s *DocumentService) GetByID(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByIDForStore(ctx, storeID, kind, id)
	if err != nil {
		return nil, err
	}
	response := ToDocumentResponse(doc)
	return &response, nil
}

// Find returns the domain document, for collaborators such as printing
func (s *DocumentService) Find(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id uuid.UUID) (*finance.Document, error) {
	return s.docRepo.FindByIDForStore(ctx, storeID, kind, id)
}

// List retrieves documents of one kind
func (s *DocumentService) List(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, filter DocumentListFilter) ([]DocumentListItem, int64, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "issue_date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}
	domainFilter := finance.DocumentFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		Kind:      kind,
		ContactID: filter.ContactID,
	}
	if filter.Status != "" {
		status := finance.DocumentStatus(filter.Status)
		domainFilter.Status = &status
	}

	docs, total, err := s.docRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]DocumentListItem, len(docs))
	for i := range docs {
		items[i] = ToDocumentListItem(&docs[i])
	}
	return items, total, nil
}

// Delete removes a draft document
func (s *DocumentService) Delete(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id uuid.UUID) error {
	doc, err := s.docRepo.FindByIDForStore(ctx, storeID, kind, id)
	if err != nil {
		return err
	}
	if doc.Status != finance.StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft documents can be deleted; cancel it instead")
	}
	return s.docRepo.DeleteForStore(ctx, storeID, kind, id)
}

// AddItem appends a line item
func (s *DocumentService) AddItem(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id uuid.UUID, req LineItemRequest) (*DocumentResponse, error) {
	return s.mutate(ctx, storeID, kind, id, func(doc *finance.Document, st *settings.StoreSettings) error {
		inputs, err := s.resolveItems(ctx, storeID, st, []LineItemRequest{req}, "item")
		if err != nil {
			return err
		}
		_, err = doc.AddItem(inputs[0])
		return prefixValidation(err, "item")
	})
}

// UpdateItem replaces a line item's inputs
func (s *DocumentService) UpdateItem(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id, itemID uuid.UUID, req LineItemRequest) (*DocumentResponse, error) {
	return s.mutate(ctx, storeID, kind, id, func(doc *finance.Document, st *settings.StoreSettings) error {
		inputs, err := s.resolveItems(ctx, storeID, st, []LineItemRequest{req}, "item")
		if err != nil {
			return err
		}
		return prefixValidation(doc.UpdateItem(itemID, inputs[0]), "item")
	})
}

// RemoveItem deletes a line item
func (s *DocumentService) RemoveItem(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id, itemID uuid.UUID) (*DocumentResponse, error) {
	return s.mutate(ctx, storeID, kind, id, func(doc *finance.Document, _ *settings.StoreSettings) error {
		return doc.RemoveItem(itemID)
	})
}

// SetTransportCost sets the flat adjustment
func (s *DocumentService) SetTransportCost(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id uuid.UUID, req AdjustmentRequest) (*DocumentResponse, error) {
	return s.mutate(ctx, storeID, kind, id, func(doc *finance.Document, _ *settings.StoreSettings) error {
		return doc.SetTransportCost(req.TransportCost)
	})
}

// RecordPayment adds a payment; the status follows the amount received
func (s *DocumentService) RecordPayment(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id uuid.UUID, req PaymentRequest) (*DocumentResponse, error) {
	return s.mutate(ctx, storeID, kind, id, func(doc *finance.Document, _ *settings.StoreSettings) error {
		return doc.RecordPayment(req.Amount)
	})
}

// ChangeStatus sets the status by hand
func (s *DocumentService) ChangeStatus(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id uuid.UUID, req StatusRequest) (*DocumentResponse, error) {
	return s.mutate(ctx, storeID, kind, id, func(doc *finance.Document, _ *settings.StoreSettings) error {
		return doc.ChangeStatus(finance.DocumentStatus(req.Status))
	})
}

// Submit issues the document. The idempotency key is reserved before the
// document changes, so a repeated or concurrent key is rejected with
// shared.ErrDuplicateSubmission. A failed submission releases the key.
func (s *DocumentService) Submit(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id uuid.UUID, idempotencyKey string) (*DocumentResponse, error) {
	key := ""
	if s.idempotency != nil && idempotencyKey != "" {
		key = fmt.Sprintf("submit:%s:%s:%s", storeID, kind, idempotencyKey)
		fresh, err := s.idempotency.MarkProcessed(ctx, key, s.idempotencyTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve idempotency key: %w", err)
		}
		if !fresh {
			return nil, shared.ErrDuplicateSubmission
		}
	}

	response, err := s.mutate(ctx, storeID, kind, id, func(doc *finance.Document, _ *settings.StoreSettings) error {
		return doc.Submit()
	})
	if err != nil {
		if key != "" {
			if releaseErr := s.idempotency.Release(ctx, key); releaseErr != nil {
				s.logger.Warn("failed to release idempotency key", zap.String("key", key), zap.Error(releaseErr))
			}
		}
		return nil, err
	}
	return response, nil
}

// MarkOverdue moves every sent document past its due date to overdue and
// returns how many changed
func (s *DocumentService) MarkOverdue(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind) (int, error) {
	now := s.now()
	sent := finance.StatusSent
	filter := finance.DocumentFilter{
		Filter:    shared.Filter{Page: 1, PageSize: 100, OrderBy: "due_date", OrderDir: "asc"},
		Kind:      kind,
		Status:    &sent,
		DueBefore: &now,
	}

	changed := 0
	for {
		docs, _, err := s.docRepo.FindAllForStore(ctx, storeID, filter)
		if err != nil {
			return changed, err
		}
		saved := 0
		for i := range docs {
			if !docs[i].MarkOverdue(now) {
				continue
			}
			if err := s.save(ctx, &docs[i]); err != nil {
				return changed, err
			}
			saved++
		}
		changed += saved
		if len(docs) < filter.Limit() {
			return changed, nil
		}
		// Saved rows leave the "sent" result set, so only advance past the rest.
		if saved == 0 {
			filter.Page++
		}
	}
}

// SweepOverdue runs MarkOverdue for every store with sent documents past due
// and returns the total number changed
func (s *DocumentService) SweepOverdue(ctx context.Context, kind finance.DocumentKind) (int, error) {
	stores, err := s.docRepo.StoresWithDueDocuments(ctx, kind, s.now())
	if err != nil {
		return 0, err
	}
	total := 0
	for _, storeID := range stores {
		n, err := s.MarkOverdue(ctx, storeID, kind)
		total += n
		if err != nil {
			return total, fmt.Errorf("store %s: %w", storeID, err)
		}
	}
	return total, nil
}

func (s *DocumentService) mutate(
	ctx context.Context,
	storeID uuid.UUID,
	kind finance.DocumentKind,
	id uuid.UUID,
	fn func(doc *finance.Document, st *settings.StoreSettings) error,
) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByIDForStore(ctx, storeID, kind, id)
	if err != nil {
		return nil, err
	}
	storeSettings, err := s.settings.Current(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if err := fn(doc, storeSettings); err != nil {
		return nil, err
	}
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	response := ToDocumentResponse(doc)
	return &response, nil
}

// save persists the document, then hands its pending events to the publisher.
// Publishing failures are logged only.
func (s *DocumentService) save(ctx context.Context, doc *finance.Document) error {
	if err := s.docRepo.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to save %s: %w", doc.Kind, err)
	}
	events := doc.GetDomainEvents()
	doc.ClearDomainEvents()
	if len(events) == 0 {
		return nil
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish document events",
			zap.String("document_id", doc.ID.String()),
			zap.Int("events", len(events)),
			zap.Error(err))
	}
	return nil
}

func (s *DocumentService) checkContact(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, contactID uuid.UUID) error {
	contact, err := s.contactRepo.FindByIDForStore(ctx, storeID, contactID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_CONTACT", "Contact not found")
		}
		return err
	}
	if !contact.CanReceive(string(kind)) {
		if kind == finance.KindInvoice {
			return shared.NewDomainError("INVALID_CONTACT", "Invoices must be addressed to a customer")
		}
		return shared.NewDomainError("INVALID_CONTACT", "Bills must come from a vendor")
	}
	return nil
}

func (s *DocumentService) resolveNumber(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, requested string, st *settings.StoreSettings) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested != "" {
		exists, err := s.docRepo.ExistsByNumber(ctx, storeID, kind, requested)
		if err != nil {
			return "", err
		}
		if exists {
			return "", shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("%s number %s is already used", kind, requested))
		}
		return requested, nil
	}
	seq, err := s.docRepo.NextSequence(ctx, storeID, kind)
	if err != nil {
		return "", fmt.Errorf("failed to allocate document number: %w", err)
	}
	return fmt.Sprintf("%s%05d", st.PrefixFor(string(kind)), seq), nil
}

// resolveItems turns requests into domain inputs. Unknown products fail
// with UNKNOWN_PRODUCT; missing descriptions and tax rates are filled from
// the product, then from the store default rate.
func (s *DocumentService) resolveItems(ctx context.Context, storeID uuid.UUID, st *settings.StoreSettings, reqs []LineItemRequest, field string) ([]finance.LineItemInput, error) {
	inputs := make([]finance.LineItemInput, len(reqs))
	var errs finance.ValidationErrors
	for i, req := range reqs {
		prefix := field
		if len(reqs) > 1 || field == "items" {
			prefix = fmt.Sprintf("%s[%d]", field, i)
		}
		input := finance.LineItemInput{
			ProductID:       req.ProductID,
			Description:     req.Description,
			Quantity:        req.Quantity,
			UnitPrice:       req.UnitPrice,
			DiscountPercent: req.DiscountPercent,
			TaxRatePercent:  st.DefaultTaxRate,
		}
		if req.ProductID != nil {
			product, err := s.productRepo.FindByIDForStore(ctx, storeID, *req.ProductID)
			switch {
			case errors.Is(err, shared.ErrNotFound):
				errs = append(errs, finance.NewValidationError(prefix+".product_id", finance.CodeUnknownProduct, "Product does not exist"))
				continue
			case err != nil:
				return nil, err
			}
			if strings.TrimSpace(input.Description) == "" {
				input.Description = product.Name
			}
			input.TaxRatePercent = product.TaxRatePercent
		}
		if req.TaxRatePercent != nil {
			input.TaxRatePercent = *req.TaxRatePercent
		}
		inputs[i] = input
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return inputs, nil
}

func prefixValidation(err error, prefix string) error {
	var verrs finance.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.WithPrefix(prefix)
	}
	return err
}
