package printing

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/partner"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/settings"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	infra "github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/printing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubChart struct {
	chart *finance.ChartOfAccounts
	err   error
}

func (s stubChart) BuildChart(context.Context, uuid.UUID) (*finance.ChartOfAccounts, error) {
	return s.chart, s.err
}

type stubSettings struct {
	settings *settings.StoreSettings
}

func (s stubSettings) Current(context.Context, uuid.UUID) (*settings.StoreSettings, error) {
	return s.settings, nil
}

type MockDocumentSource struct {
	mock.Mock
}

func (m *MockDocumentSource) Find(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id uuid.UUID) (*finance.Document, error) {
	args := m.Called(ctx, storeID, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Document), args.Error(1)
}

type MockContactSource struct {
	mock.Mock
}

func (m *MockContactSource) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*partner.Contact, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Contact), args.Error(1)
}

type fakeRenderer struct {
	mu       sync.Mutex
	requests []*infra.RenderRequest
}

func (r *fakeRenderer) Render(_ context.Context, req *infra.RenderRequest) (*infra.RenderResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return &infra.RenderResult{PDFData: []byte("%PDF-1.7"), PageCount: 1}, nil
}

func (r *fakeRenderer) Close() error { return nil }

type fakeArchive struct {
	keys []string
}

func (a *fakeArchive) Store(_ context.Context, storeID uuid.UUID, name, ext, _ string, _ []byte) (*infra.ArchivedReport, error) {
	key := storeID.String() + "/" + name + "." + ext
	a.keys = append(a.keys, key)
	return &infra.ArchivedReport{Key: key, URL: "https://files.test/" + key, ExpiresAt: time.Date(2026, 4, 9, 13, 0, 0, 0, time.UTC)}, nil
}

var fixedNow = time.Date(2026, 4, 9, 12, 0, 0, 0, time.UTC)

type fixture struct {
	storeID  uuid.UUID
	docs     *MockDocumentSource
	contacts *MockContactSource
	renderer *fakeRenderer
	archive  *fakeArchive
	service  *PrintService
}

func newFixture(t *testing.T, chart ChartSource, opts ...PrintServiceOption) *fixture {
	t.Helper()
	engine, err := infra.NewTemplateEngine()
	require.NoError(t, err)

	f := &fixture{
		storeID:  uuid.New(),
		docs:     new(MockDocumentSource),
		contacts: new(MockContactSource),
		renderer: &fakeRenderer{},
		archive:  &fakeArchive{},
	}
	st := settings.Default(f.storeID, "Corner Shop")
	opts = append([]PrintServiceOption{WithLogger(zaptest.NewLogger(t)), WithClock(func() time.Time { return fixedNow })}, opts...)
	f.service = NewPrintService(chart, f.docs, f.contacts, stubSettings{settings: st}, engine, opts...)
	return f
}

func sampleInvoice(t *testing.T, storeID uuid.UUID, number string) *finance.Document {
	t.Helper()
	doc, err := finance.NewDocument(storeID, finance.KindInvoice, number, uuid.New(),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), nil, "USD")
	require.NoError(t, err)
	_, err = doc.AddItem(finance.LineItemInput{
		Description:    "Widget",
		Quantity:       decimal.NewFromInt(2),
		UnitPrice:      1250,
		TaxRatePercent: decimal.NewFromInt(8),
	})
	require.NoError(t, err)
	return doc
}

func TestPrintChart_HTML(t *testing.T) {
	storeID := uuid.New()
	cash, err := finance.NewAccount(storeID, 1, "Cash", finance.CategoryAsset, 1000)
	require.NoError(t, err)
	chart := finance.NewChartOfAccounts([]finance.Account{*cash}, nil)

	f := newFixture(t, stubChart{chart: chart})
	res, err := f.service.PrintChart(context.Background(), f.storeID, FormatHTML, false)
	require.NoError(t, err)

	html := string(res.Data)
	assert.Equal(t, "chart-of-accounts-2026-04-09.html", res.Filename)
	assert.Equal(t, "text/html; charset=utf-8", res.ContentType)
	assert.Contains(t, html, "Corner Shop")
	assert.Contains(t, html, "Assets")
	assert.Contains(t, html, "A0001")
	assert.Contains(t, html, "$ 10.00")
	assert.Empty(t, res.URL)
}

func TestPrintChart_PDFRequiresRenderer(t *testing.T) {
	chart := finance.NewChartOfAccounts(nil, nil)
	f := newFixture(t, stubChart{chart: chart})

	_, err := f.service.PrintChart(context.Background(), f.storeID, FormatPDF, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.NewDomainError("PRINTING_UNAVAILABLE", ""))
}

func TestPrintChart_SourceError(t *testing.T) {
	f := newFixture(t, stubChart{err: errors.New("db down")})

	_, err := f.service.PrintChart(context.Background(), f.storeID, FormatHTML, false)
	assert.EqualError(t, err, "db down")
}

func TestPrintDocument_PDFArchived(t *testing.T) {
	f := newFixture(t, stubChart{})
	WithRenderer(f.renderer)(f.service)
	WithArchive(f.archive)(f.service)
	ctx := context.Background()
	doc := sampleInvoice(t, f.storeID, "INV-00001")
	contact, err := partner.NewContact(f.storeID, partner.ContactInput{Kind: partner.ContactCustomer, Name: "Acme Ltd"})
	require.NoError(t, err)

	f.docs.On("Find", ctx, f.storeID, finance.KindInvoice, doc.ID).Return(doc, nil)
	f.contacts.On("FindByIDForStore", ctx, f.storeID, doc.ContactID).Return(contact, nil)

	res, err := f.service.PrintDocument(ctx, f.storeID, finance.KindInvoice, doc.ID, FormatPDF, true)
	require.NoError(t, err)

	assert.Equal(t, "INV-00001.pdf", res.Filename)
	assert.Equal(t, "application/pdf", res.ContentType)
	assert.Equal(t, []byte("%PDF-1.7"), res.Data)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, "https://files.test/"+f.storeID.String()+"/INV-00001.pdf", res.URL)
	require.NotNil(t, res.ExpiresAt)

	require.Len(t, f.renderer.requests, 1)
	req := f.renderer.requests[0]
	assert.Equal(t, "Invoice INV-00001", req.Title)
	assert.Equal(t, infra.PaperSizeA4, req.PaperSize)
	assert.Contains(t, req.HTML, "Acme Ltd")
	assert.Contains(t, req.HTML, "$ 27.00")
	f.docs.AssertExpectations(t)
	f.contacts.AssertExpectations(t)
}

func TestPrintDocument_MissingContact(t *testing.T) {
	f := newFixture(t, stubChart{})
	ctx := context.Background()
	doc := sampleInvoice(t, f.storeID, "INV-00002")

	f.docs.On("Find", ctx, f.storeID, finance.KindInvoice, doc.ID).Return(doc, nil)
	f.contacts.On("FindByIDForStore", ctx, f.storeID, doc.ContactID).Return(nil, shared.ErrNotFound)

	res, err := f.service.PrintDocument(ctx, f.storeID, finance.KindInvoice, doc.ID, FormatHTML, false)
	require.NoError(t, err)
	assert.Contains(t, string(res.Data), "Unknown contact")
}

func TestPrintDocument_ArchiveNotConfigured(t *testing.T) {
	f := newFixture(t, stubChart{})
	ctx := context.Background()
	doc := sampleInvoice(t, f.storeID, "INV-00003")

	f.docs.On("Find", ctx, f.storeID, finance.KindInvoice, doc.ID).Return(doc, nil)
	f.contacts.On("FindByIDForStore", ctx, f.storeID, doc.ContactID).Return(nil, shared.ErrNotFound)

	_, err := f.service.PrintDocument(ctx, f.storeID, finance.KindInvoice, doc.ID, FormatHTML, true)
	assert.ErrorIs(t, err, shared.NewDomainError("PRINTING_UNAVAILABLE", ""))
}

func TestPrintDocuments_KeepsOrder(t *testing.T) {
	f := newFixture(t, stubChart{})
	var ids []uuid.UUID
	for _, number := range []string{"INV-00010", "INV-00011", "INV-00012"} {
		doc := sampleInvoice(t, f.storeID, number)
		ids = append(ids, doc.ID)
		f.docs.On("Find", mock.Anything, f.storeID, finance.KindInvoice, doc.ID).Return(doc, nil)
	}
	f.contacts.On("FindByIDForStore", mock.Anything, f.storeID, mock.Anything).Return(nil, shared.ErrNotFound)

	results, err := f.service.PrintDocuments(context.Background(), f.storeID, finance.KindInvoice, ids, FormatHTML)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "INV-00010.html", results[0].Filename)
	assert.Equal(t, "INV-00011.html", results[1].Filename)
	assert.Equal(t, "INV-00012.html", results[2].Filename)
}

func TestPrintDocuments_FailureStopsBatch(t *testing.T) {
	f := newFixture(t, stubChart{})
	missing := uuid.New()
	f.docs.On("Find", mock.Anything, f.storeID, finance.KindBill, missing).Return(nil, shared.ErrNotFound)

	_, err := f.service.PrintDocuments(context.Background(), f.storeID, finance.KindBill, []uuid.UUID{missing}, FormatHTML)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.True(t, strings.HasPrefix(err.Error(), "document "+missing.String()))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, f)

	f, err = ParseFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("docx")
	assert.ErrorIs(t, err, shared.NewDomainError("INVALID_FORMAT", ""))
}
