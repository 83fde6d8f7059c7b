package printing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/partner"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/settings"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	infra "github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/printing"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const batchConcurrency = 4

// ChartSource builds the chart of accounts of a store
type ChartSource interface {
	BuildChart(ctx context.Context, storeID uuid.UUID) (*finance.ChartOfAccounts, error)
}

// DocumentSource loads invoices and bills
type DocumentSource interface {
	Find(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id uuid.UUID) (*finance.Document, error)
}

// ContactSource loads document counterparties
type ContactSource interface {
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*partner.Contact, error)
}

// SettingsProvider returns the effective settings of a store
type SettingsProvider interface {
	Current(ctx context.Context, storeID uuid.UUID) (*settings.StoreSettings, error)
}

// Archive stores rendered reports
type Archive interface {
	Store(ctx context.Context, storeID uuid.UUID, name, ext, contentType string, data []byte) (*infra.ArchivedReport, error)
}

// PrintService renders the chart of accounts and documents for printing
type PrintService struct {
	chart    ChartSource
	docs     DocumentSource
	contacts ContactSource
	settings SettingsProvider
	engine   *infra.TemplateEngine
	renderer infra.PDFRenderer
	archive  Archive
	logger   *zap.Logger
	now      func() time.Time
}

// PrintServiceOption configures a PrintService
type PrintServiceOption func(*PrintService)

// WithRenderer enables PDF output
func WithRenderer(renderer infra.PDFRenderer) PrintServiceOption {
	return func(s *PrintService) {
		s.renderer = renderer
	}
}

// WithArchive enables storing rendered reports
func WithArchive(archive Archive) PrintServiceOption {
	return func(s *PrintService) {
		s.archive = archive
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) PrintServiceOption {
	return func(s *PrintService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) PrintServiceOption {
	return func(s *PrintService) {
		s.now = now
	}
}

// NewPrintService creates a new PrintService
func NewPrintService(
	chart ChartSource,
	docs DocumentSource,
	contacts ContactSource,
	settingsProvider SettingsProvider,
	engine *infra.TemplateEngine,
	opts ...PrintServiceOption,
) *PrintService {
	s := &PrintService{
		chart:    chart,
		docs:     docs,
		contacts: contacts,
		settings: settingsProvider,
		engine:   engine,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseFormat validates a requested format; empty means HTML
func ParseFormat(raw string) (Format, error) {
	if raw == "" {
		return FormatHTML, nil
	}
	f := Format(raw)
	if !f.IsValid() {
		return "", shared.NewDomainError("INVALID_FORMAT", fmt.Sprintf("Unsupported print format %q", raw))
	}
	return f, nil
}

// PrintChart renders every account of the chart, regardless of expand state
func (s *PrintService) PrintChart(ctx context.Context, storeID uuid.UUID, format Format, archive bool) (*PrintResult, error) {
	st, err := s.settings.Current(ctx, storeID)
	if err != nil {
		return nil, err
	}
	chart, err := s.chart.BuildChart(ctx, storeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	report := &infra.ChartReport{
		BusinessName: st.BusinessName,
		Currency:     st.Currency,
		GeneratedAt:  now,
	}
	for _, row := range chart.AllRows() {
		report.Rows = append(report.Rows, infra.ChartReportRow{
			Depth:      row.Depth,
			Code:       row.Code,
			Name:       row.Name,
			Balance:    row.Balance,
			IsCategory: row.AccountID == nil,
			IsActive:   row.IsActive,
		})
	}

	html, err := s.engine.RenderChart(ctx, report)
	if err != nil {
		return nil, err
	}
	name := "chart-of-accounts-" + now.Format("2006-01-02")
	return s.finish(ctx, storeID, name, "Chart of Accounts", html, format, archive)
}

// PrintDocument renders one invoice or bill
func (s *PrintService) PrintDocument(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id uuid.UUID, format Format, archive bool) (*PrintResult, error) {
	st, err := s.settings.Current(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return s.printDocument(ctx, st, kind, id, format, archive)
}

// PrintDocuments renders several documents concurrently. Results keep the
// order of ids; the first failure cancels the rest.
func (s *PrintService) PrintDocuments(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, ids []uuid.UUID, format Format) ([]PrintResult, error) {
	st, err := s.settings.Current(ctx, storeID)
	if err != nil {
		return nil, err
	}

	results := make([]PrintResult, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			res, err := s.printDocument(gctx, st, kind, id, format, s.archive != nil)
			if err != nil {
				return fmt.Errorf("document %s: %w", id, err)
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *PrintService) printDocument(ctx context.Context, st *settings.StoreSettings, kind finance.DocumentKind, id uuid.UUID, format Format, archive bool) (*PrintResult, error) {
	doc, err := s.docs.Find(ctx, st.StoreID, kind, id)
	if err != nil {
		return nil, err
	}

	report := &infra.DocumentReport{
		BusinessName:    st.BusinessName,
		Kind:            string(doc.Kind),
		Number:          doc.Number,
		Status:          doc.Status.String(),
		IssueDate:       doc.IssueDate,
		DueDate:         doc.DueDate,
		Currency:        doc.Currency,
		Contact:         s.contactBlock(ctx, doc),
		Subtotal:        doc.Subtotal,
		TaxAmount:       doc.TaxAmount,
		TransportCost:   doc.TransportCost,
		Total:           doc.TotalAmount,
		PaymentReceived: doc.PaymentReceived,
		BalanceDue:      doc.BalanceDue(),
		Notes:           doc.Notes,
	}
	for _, item := range doc.Items {
		report.Items = append(report.Items, infra.DocumentReportLine{
			Description:     item.Description,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			TaxRatePercent:  item.TaxRatePercent,
			Amount:          item.Amount,
		})
	}

	html, err := s.engine.RenderDocument(ctx, report)
	if err != nil {
		return nil, err
	}
	return s.finish(ctx, st.StoreID, doc.Number, doc.Kind.AggregateType()+" "+doc.Number, html, format, archive)
}

// contactBlock falls back to a placeholder when the contact was deleted
func (s *PrintService) contactBlock(ctx context.Context, doc *finance.Document) infra.ContactBlock {
	contact, err := s.contacts.FindByIDForStore(ctx, doc.StoreID, doc.ContactID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Failed to load document contact",
				zap.String("document_id", doc.ID.String()),
				zap.Error(err))
		}
		return infra.ContactBlock{Name: "Unknown contact"}
	}
	return infra.ContactBlock{
		Name:    contact.Name,
		Email:   contact.Email,
		Phone:   contact.Phone,
		Address: contact.Address,
		TaxID:   contact.TaxID,
	}
}

func (s *PrintService) finish(ctx context.Context, storeID uuid.UUID, name, title, html string, format Format, archive bool) (*PrintResult, error) {
	result := &PrintResult{
		Filename:    name + "." + string(format),
		ContentType: format.ContentType(),
		Data:        []byte(html),
	}

	if format == FormatPDF {
		if s.renderer == nil {
			return nil, shared.NewDomainError("PRINTING_UNAVAILABLE", "PDF rendering is not configured")
		}
		rendered, err := s.renderer.Render(ctx, &infra.RenderRequest{
			HTML:       html,
			Title:      title,
			PaperSize:  infra.PaperSizeA4,
			Margins:    infra.DefaultMargins(),
			FooterHTML: pageFooter,
		})
		if err != nil {
			return nil, err
		}
		result.Data = rendered.PDFData
		result.Pages = rendered.PageCount
	}

	if archive {
		if s.archive == nil {
			return nil, shared.NewDomainError("PRINTING_UNAVAILABLE", "Report archive is not configured")
		}
		stored, err := s.archive.Store(ctx, storeID, name, string(format), result.ContentType, result.Data)
		if err != nil {
			return nil, err
		}
		result.URL = stored.URL
		expires := stored.ExpiresAt
		result.ExpiresAt = &expires
	}

	s.logger.Debug("Report printed",
		zap.String("store_id", storeID.String()),
		zap.String("file", result.Filename),
		zap.Int("bytes", len(result.Data)))
	return result, nil
}

const pageFooter = `<div style="font-size:8px;width:100%;text-align:center;color:#888">` +
	`<span class="pageNumber"></span> / <span class="totalPages"></span></div>`
