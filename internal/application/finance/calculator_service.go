package finance

import (
	"context"
	"fmt"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance/editor"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// ProductChecker reports which product IDs exist in a store's catalog
type ProductChecker interface {
	KnownProducts(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error)
}

// CalculatorService evaluates documents under edit without saving them
type CalculatorService struct {
	products ProductChecker
}

// NewCalculatorService creates a CalculatorService. products may be nil,
// which disables product reference checks.
func NewCalculatorService(products ProductChecker) *CalculatorService {
	return &CalculatorService{products: products}
}

// Calculate replays the editor events over an empty document
func (s *CalculatorService) Calculate(ctx context.Context, storeID uuid.UUID, req CalculateRequest) (*CalculateResponse, error) {
	kind := finance.DocumentKind(req.Kind)
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", fmt.Sprintf("Unknown document kind %q", req.Kind))
	}

	events := make([]editor.Event, 0, len(req.Events))
	for i, dto := range req.Events {
		event, err := toEditorEvent(dto)
		if err != nil {
			return nil, fmt.Errorf("events[%d]: %w", i, err)
		}
		events = append(events, event)
	}

	opts := []editor.Option{}
	if req.Status != "" {
		opts = append(opts, editor.WithStatus(finance.DocumentStatus(req.Status)))
	}
	if s.products != nil {
		known, err := s.products.KnownProducts(ctx, storeID, referencedProducts(req.Events))
		if err != nil {
			return nil, err
		}
		opts = append(opts, editor.WithKnownProducts(known...))
	}

	state := editor.ReduceAll(editor.New(kind, opts...), events...)
	return &CalculateResponse{
		State:     state,
		Errors:    state.Errors(),
		CanSubmit: state.CanSubmit(),
	}, nil
}

// Convert reads an amount string the way committed document fields are read.
// Unreadable input is reported as invalid with a zero amount.
func (s *CalculatorService) Convert(input string, currency valueobject.Currency, tag language.Tag) ConvertResponse {
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	resp := ConvertResponse{Input: input}
	if cents, err := valueobject.ParseMinorUnits(input); err == nil {
		resp.Valid = true
		resp.MinorUnits = cents
	}
	resp.Decimal = valueobject.FormatMinorUnits(resp.MinorUnits)
	resp.Display = valueobject.FormatDisplay(resp.MinorUnits, currency, tag)
	return resp
}

func toEditorEvent(dto EditorEventDTO) (editor.Event, error) {
	draft := editor.LineDraft{}
	if dto.Line != nil {
		draft = *dto.Line
	}
	switch dto.Type {
	case "add_line":
		return editor.AddLine{Key: dto.Key, Draft: draft}, nil
	case "update_line":
		return editor.UpdateLine{Key: dto.Key, Draft: draft}, nil
	case "remove_line":
		return editor.RemoveLine{Key: dto.Key}, nil
	case "set_adjustment":
		return editor.SetAdjustment{Value: dto.Value}, nil
	case "set_payment_received":
		return editor.SetPaymentReceived{Value: dto.Value}, nil
	case "set_status":
		return editor.SetStatus{Status: finance.DocumentStatus(dto.Status)}, nil
	}
	return nil, shared.NewDomainError("INVALID_EVENT", fmt.Sprintf("Unknown editor event %q", dto.Type))
}

func referencedProducts(events []EditorEventDTO) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, e := range events {
		if e.Line == nil || e.Line.ProductID == "" {
			continue
		}
		id, err := uuid.Parse(e.Line.ProductID)
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
