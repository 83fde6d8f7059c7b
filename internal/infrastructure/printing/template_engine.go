package printing

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"maps"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	chartTemplate    = "chart.html"
	documentTemplate = "document.html"
)

// ChartReport is the data bound to the chart of accounts template
type ChartReport struct {
	BusinessName string
	Currency     valueobject.Currency
	GeneratedAt  time.Time
	Rows         []ChartReportRow
}

// ChartReportRow is one printed chart line; Depth 0 is a category header
type ChartReportRow struct {
	Depth      int
	Code       string
	Name       string
	Balance    int64
	IsCategory bool
	IsActive   bool
}

// ContactBlock is the counterparty shown on a printed document
type ContactBlock struct {
	Name    string
	Email   string
	Phone   string
	Address string
	TaxID   string
}

// DocumentReportLine is one printed line item
type DocumentReportLine struct {
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       int64
	DiscountPercent decimal.Decimal
	TaxRatePercent  decimal.Decimal
	Amount          int64
}

// DocumentReport is the data bound to the invoice/bill template
type DocumentReport struct {
	BusinessName    string
	Kind            string
	Number          string
	Status          string
	IssueDate       time.Time
	DueDate         *time.Time
	Currency        valueobject.Currency
	Contact         ContactBlock
	Items           []DocumentReportLine
	Subtotal        int64
	TaxAmount       int64
	TransportCost   int64
	Total           int64
	PaymentReceived int64
	BalanceDue      int64
	Notes           string
}

// TemplateEngine renders report data into HTML with html/template
type TemplateEngine struct {
	tag       language.Tag
	funcMap   template.FuncMap
	templates *template.Template
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithLanguage sets the locale used for money and title formatting
func WithLanguage(tag language.Tag) TemplateEngineOption {
	return func(e *TemplateEngine) {
		e.tag = tag
	}
}

// WithFuncs adds or overrides template functions
func WithFuncs(funcs template.FuncMap) TemplateEngineOption {
	return func(e *TemplateEngine) {
		maps.Copy(e.funcMap, funcs)
	}
}

// NewTemplateEngine parses the embedded report templates
func NewTemplateEngine(opts ...TemplateEngineOption) (*TemplateEngine, error) {
	e := &TemplateEngine{tag: language.AmericanEnglish, funcMap: template.FuncMap{}}
	for _, opt := range opts {
		opt(e)
	}

	base := template.FuncMap{
		"money":              e.formatMoney,
		"formatDate":         formatDate,
		"formatDateTime":     formatDateTime,
		"formatOptionalDate": formatOptionalDate,
		"formatPercent":      formatPercent,
		"title":              e.titleCase,
		"indent":             indent,
		"add":                func(a, b int) int { return a + b },
	}
	maps.Copy(base, e.funcMap)
	e.funcMap = base

	tmpl, err := template.New("reports").Funcs(e.funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, NewRenderError(ErrCodeTemplateFailed, "failed to parse report templates", err)
	}
	e.templates = tmpl
	return e, nil
}

// RenderChart renders the chart of accounts report
func (e *TemplateEngine) RenderChart(ctx context.Context, report *ChartReport) (string, error) {
	if report == nil {
		return "", NewRenderError(ErrCodeTemplateFailed, "chart report is nil", nil)
	}
	return e.execute(ctx, chartTemplate, report)
}

// RenderDocument renders an invoice or bill
func (e *TemplateEngine) RenderDocument(ctx context.Context, report *DocumentReport) (string, error) {
	if report == nil {
		return "", NewRenderError(ErrCodeTemplateFailed, "document report is nil", nil)
	}
	return e.execute(ctx, documentTemplate, report)
}

// RenderString renders an ad-hoc template with the engine's functions
func (e *TemplateEngine) RenderString(ctx context.Context, name, content string, data any) (string, error) {
	if content == "" {
		return "", NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}
	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(content)
	if err != nil {
		return "", NewRenderError(ErrCodeTemplateFailed, "failed to parse template", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeTemplateFailed, "failed to execute template", err)
	}
	return buf.String(), nil
}

func (e *TemplateEngine) execute(ctx context.Context, name string, data any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", NewRenderError(ErrCodeTemplateFailed, "failed to execute "+name, err)
	}
	return buf.String(), nil
}

func (e *TemplateEngine) formatMoney(cents int64, currency valueobject.Currency) string {
	return valueobject.FormatDisplay(cents, currency, e.tag)
}

func (e *TemplateEngine) titleCase(s string) string {
	return cases.Title(e.tag).String(s)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDate(*t)
}

func formatPercent(d decimal.Decimal) string {
	return d.String() + "%"
}

// indent returns the left padding in pixels for a tree depth
func indent(depth int) int {
	return 6 + depth*16
}
