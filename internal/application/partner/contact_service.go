package partner

import (
	"context"
	"fmt"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/partner"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactService handles customer and vendor operations
type ContactService struct {
	contactRepo partner.ContactRepository
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo partner.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// Create creates a new contact
func (s *ContactService) Create(ctx context.Context, storeID uuid.UUID, req CreateContactRequest) (*ContactResponse, error) {
	contact, err := partner.NewContact(storeID, partner.ContactInput{
		Kind:    partner.ContactKind(req.Kind),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		TaxID:   req.TaxID,
		Notes:   req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}
	response := ToContactResponse(contact)
	return &response, nil
}

// GetByID retrieves a contact by ID
func (s *ContactService) GetByID(ctx context.Context, storeID, contactID uuid.UUID) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByIDForStore(ctx, storeID, contactID)
	if err != nil {
		return nil, err
	}
	response := ToContactResponse(contact)
	return &response, nil
}

// List retrieves contacts with filtering and pagination
func (s *ContactService) List(ctx context.Context, storeID uuid.UUID, filter ContactListFilter) ([]ContactResponse, int64, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	domainFilter := partner.ContactFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
	}
	if filter.Kind != "" {
		kind := partner.ContactKind(filter.Kind)
		domainFilter.Kind = &kind
	}

	contacts, total, err := s.contactRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = ToContactResponse(&contacts[i])
	}
	return responses, total, nil
}

// Update updates a contact
func (s *ContactService) Update(ctx context.Context, storeID, contactID uuid.UUID, req UpdateContactRequest) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByIDForStore(ctx, storeID, contactID)
	if err != nil {
		return nil, err
	}

	input := partner.ContactInput{
		Kind:    contact.Kind,
		Name:    contact.Name,
		Email:   contact.Email,
		Phone:   contact.Phone,
		Address: contact.Address,
		TaxID:   contact.TaxID,
		Notes:   contact.Notes,
	}
	if req.Kind != nil {
		input.Kind = partner.ContactKind(*req.Kind)
	}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.Email != nil {
		input.Email = *req.Email
	}
	if req.Phone != nil {
		input.Phone = *req.Phone
	}
	if req.Address != nil {
		input.Address = *req.Address
	}
	if req.TaxID != nil {
		input.TaxID = *req.TaxID
	}
	if req.Notes != nil {
		input.Notes = *req.Notes
	}

	if err := contact.Update(input); err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}
	response := ToContactResponse(contact)
	return &response, nil
}

// Delete deletes a contact
func (s *ContactService) Delete(ctx context.Context, storeID, contactID uuid.UUID) error {
	return s.contactRepo.DeleteForStore(ctx, storeID, contactID)
}
