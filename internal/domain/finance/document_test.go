package finance

import (
	"math"
	"testing"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T) *Document {
	t.Helper()
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	due := issue.AddDate(0, 0, 30)
	doc, err := NewDocument(uuid.New(), KindInvoice, "INV-0001", uuid.New(), issue, &due, valueobject.USD)
	require.NoError(t, err)
	return doc
}

func addScenarioItems(t *testing.T, doc *Document) []*LineItem {
	t.Helper()
	var added []*LineItem
	for _, item := range scenarioItems(t) {
		li, err := doc.AddItem(item.Input())
		require.NoError(t, err)
		added = append(added, li)
	}
	return added
}

func TestNewDocument(t *testing.T) {
	issue := time.Now()

	t.Run("creates draft with event", func(t *testing.T) {
		doc := newTestInvoice(t)
		assert.Equal(t, StatusDraft, doc.Status)
		assert.Empty(t, doc.Items)
		require.Len(t, doc.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeDocumentCreated, doc.GetDomainEvents()[0].EventType())
		assert.Equal(t, "Invoice", doc.GetDomainEvents()[0].AggregateType())
	})

	t.Run("defaults currency", func(t *testing.T) {
		doc, err := NewDocument(uuid.New(), KindBill, "BILL-1", uuid.New(), issue, nil, "")
		require.NoError(t, err)
		assert.Equal(t, valueobject.DefaultCurrency, doc.Currency)
	})

	t.Run("validation", func(t *testing.T) {
		before := issue.AddDate(0, 0, -1)
		_, err := NewDocument(uuid.New(), DocumentKind("quote"), "Q-1", uuid.New(), issue, nil, "")
		assert.Error(t, err)
		_, err = NewDocument(uuid.New(), KindInvoice, " ", uuid.New(), issue, nil, "")
		assert.Error(t, err)
		_, err = NewDocument(uuid.New(), KindInvoice, "INV-1", uuid.Nil, issue, nil, "")
		assert.Error(t, err)
		_, err = NewDocument(uuid.New(), KindInvoice, "INV-1", uuid.New(), time.Time{}, nil, "")
		assert.Error(t, err)
		_, err = NewDocument(uuid.New(), KindInvoice, "INV-1", uuid.New(), issue, &before, "")
		assert.Error(t, err)
		_, err = NewDocument(uuid.New(), KindInvoice, "INV-1", uuid.New(), issue, nil, "dollars")
		assert.Error(t, err)
	})
}

func TestDocument_ItemsAndTotals(t *testing.T) {
	doc := newTestInvoice(t)
	items := addScenarioItems(t, doc)

	assert.Equal(t, DocumentTotals{Subtotal: 3175, TaxAmount: 234, TotalAmount: 3409}, doc.Totals())

	t.Run("transport cost is a flat adjustment", func(t *testing.T) {
		require.NoError(t, doc.SetTransportCost(591))
		assert.Equal(t, int64(4000), doc.TotalAmount)
		assert.Error(t, doc.SetTransportCost(-1))
		require.NoError(t, doc.SetTransportCost(0))
	})

	t.Run("update recomputes", func(t *testing.T) {
		input := items[1].Input()
		input.Quantity = d("3")
		require.NoError(t, doc.UpdateItem(items[1].ID, input))
		assert.Equal(t, int64(4175), doc.Subtotal)
		assert.Equal(t, int64(4409), doc.TotalAmount)
	})

	t.Run("invalid update keeps committed values", func(t *testing.T) {
		input := items[1].Input()
		input.Quantity = d("0")
		err := doc.UpdateItem(items[1].ID, input)
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, int64(4409), doc.TotalAmount)
		assert.True(t, doc.Items[1].Quantity.Equal(d("3")))
	})

	t.Run("remove leaves no residue", func(t *testing.T) {
		require.NoError(t, doc.RemoveItem(items[1].ID))
		assert.Len(t, doc.Items, 2)
		assert.Equal(t, int64(2675), doc.Subtotal)
		assert.Equal(t, int64(234), doc.TaxAmount)
		assert.Equal(t, int64(2909), doc.TotalAmount)
	})

	t.Run("unknown item", func(t *testing.T) {
		assert.Error(t, doc.RemoveItem(uuid.New()))
		assert.Error(t, doc.UpdateItem(uuid.New(), items[0].Input()))
	})
}

func TestDocument_TotalsStayInRange(t *testing.T) {
	doc := newTestInvoice(t)
	half := int64(math.MaxInt64/2 + 1)
	big := LineItemInput{Description: "Pallet", Quantity: d("1"), UnitPrice: half, DiscountPercent: d("0"), TaxRatePercent: d("0")}
	first, err := doc.AddItem(big)
	require.NoError(t, err)
	version := doc.Version

	_, err = doc.AddItem(big)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, CodeAmountRange, verrs[0].Code)
	assert.Len(t, doc.Items, 1)
	assert.Equal(t, half, doc.TotalAmount)
	assert.Equal(t, version, doc.Version)

	assert.Error(t, doc.SetTransportCost(half))
	assert.Zero(t, doc.TransportCost)

	taxed := big
	taxed.TaxRatePercent = d("100")
	assert.Error(t, doc.UpdateItem(first.ID, taxed))
	assert.True(t, doc.Items[0].TaxRatePercent.IsZero())
	assert.Equal(t, half, doc.TotalAmount)
}

func TestDocument_Payments(t *testing.T) {
	t.Run("partial then full", func(t *testing.T) {
		doc := newTestInvoice(t)
		addScenarioItems(t, doc)

		require.NoError(t, doc.RecordPayment(1000))
		assert.Equal(t, StatusSent, doc.Status)
		assert.Equal(t, int64(2409), doc.BalanceDue())

		require.NoError(t, doc.RecordPayment(2409))
		assert.Equal(t, StatusPaid, doc.Status)
		assert.NotNil(t, doc.PaidAt)
		assert.Equal(t, int64(0), doc.BalanceDue())

		var paidEvents int
		for _, e := range doc.GetDomainEvents() {
			if e.EventType() == EventTypeDocumentPaid {
				paidEvents++
			}
		}
		assert.Equal(t, 1, paidEvents)
	})

	t.Run("zero payment leaves status", func(t *testing.T) {
		doc := newTestInvoice(t)
		addScenarioItems(t, doc)
		require.NoError(t, doc.SetPaymentReceived(0))
		assert.Equal(t, StatusDraft, doc.Status)
	})

	t.Run("invalid amounts", func(t *testing.T) {
		doc := newTestInvoice(t)
		assert.Error(t, doc.RecordPayment(0))
		assert.Error(t, doc.SetPaymentReceived(-5))
	})

	t.Run("payment sum beyond range is rejected", func(t *testing.T) {
		doc := newTestInvoice(t)
		addScenarioItems(t, doc)
		require.NoError(t, doc.SetPaymentReceived(math.MaxInt64-10))
		err := doc.RecordPayment(11)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeAmountRange, domainErr.Code)
		assert.Equal(t, int64(math.MaxInt64-10), doc.PaymentReceived)
	})

	t.Run("paid documents lock items", func(t *testing.T) {
		doc := newTestInvoice(t)
		items := addScenarioItems(t, doc)
		require.NoError(t, doc.SetPaymentReceived(doc.TotalAmount))
		_, err := doc.AddItem(items[0].Input())
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("cancelled rejects payments", func(t *testing.T) {
		doc := newTestInvoice(t)
		require.NoError(t, doc.ChangeStatus(StatusCancelled))
		assert.Error(t, doc.RecordPayment(100))
	})
}

func TestDocument_StatusChanges(t *testing.T) {
	t.Run("manual status", func(t *testing.T) {
		doc := newTestInvoice(t)
		require.NoError(t, doc.ChangeStatus(StatusOverdue))
		assert.Equal(t, StatusOverdue, doc.Status)
		assert.Error(t, doc.ChangeStatus(DocumentStatus("bogus")))
	})

	t.Run("mark overdue after due date", func(t *testing.T) {
		doc := newTestInvoice(t)
		addScenarioItems(t, doc)
		assert.False(t, doc.MarkOverdue(doc.DueDate.AddDate(0, 0, 1)), "drafts are never overdue")

		require.NoError(t, doc.Submit())
		assert.False(t, doc.MarkOverdue(*doc.DueDate))
		assert.True(t, doc.MarkOverdue(doc.DueDate.Add(time.Hour)))
		assert.Equal(t, StatusOverdue, doc.Status)

		require.NoError(t, doc.RecordPayment(100))
		assert.Equal(t, StatusOverdue, doc.Status)
	})
}

func TestDocument_Submit(t *testing.T) {
	doc := newTestInvoice(t)
	assert.Error(t, doc.Submit(), "empty documents cannot be submitted")

	addScenarioItems(t, doc)
	doc.ClearDomainEvents()
	require.NoError(t, doc.Submit())
	assert.Equal(t, StatusSent, doc.Status)
	require.NotNil(t, doc.SubmittedAt)

	events := doc.GetDomainEvents()
	require.Len(t, events, 1)
	submitted, ok := events[0].(*DocumentSubmittedEvent)
	require.True(t, ok)
	assert.Equal(t, int64(3409), submitted.Totals.TotalAmount)
	assert.Len(t, submitted.Items, 3)

	cancelled := newTestInvoice(t)
	addScenarioItems(t, cancelled)
	require.NoError(t, cancelled.ChangeStatus(StatusCancelled))
	assert.Error(t, cancelled.Submit())
}
