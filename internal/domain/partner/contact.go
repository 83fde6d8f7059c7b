package partner

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactKind tells customers (invoiced) from vendors (billed)
type ContactKind string

const (
	ContactCustomer ContactKind = "customer"
	ContactVendor   ContactKind = "vendor"
)

// IsValid checks if the kind is valid
func (k ContactKind) IsValid() bool {
	return k == ContactCustomer || k == ContactVendor
}

// Contact is a customer or vendor of the store
type Contact struct {
	shared.StoreAggregateRoot
	Kind    ContactKind `json:"kind"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Phone   string      `json:"phone"`
	Address string      `json:"address"`
	TaxID   string      `json:"tax_id"`
	Notes   string      `json:"notes"`
}

// ContactInput carries the editable fields of a contact
type ContactInput struct {
	Kind    ContactKind
	Name    string
	Email   string
	Phone   string
	Address string
	TaxID   string
	Notes   string
}

// NewContact creates a contact
func NewContact(storeID uuid.UUID, input ContactInput) (*Contact, error) {
	c := &Contact{StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID)}
	if err := c.assign(input); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the editable fields
func (c *Contact) Update(input ContactInput) error {
	if err := c.assign(input); err != nil {
		return err
	}
	c.IncrementVersion()
	return nil
}

func (c *Contact) assign(input ContactInput) error {
	if !input.Kind.IsValid() {
		return shared.NewDomainError("INVALID_KIND", fmt.Sprintf("Unknown contact kind %q", input.Kind))
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Contact name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Contact name cannot exceed 200 characters")
	}
	email := strings.TrimSpace(input.Email)
	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil || addr.Address != email {
			return shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
		}
	}
	c.Kind = input.Kind
	c.Name = name
	c.Email = strings.ToLower(email)
	c.Phone = strings.TrimSpace(input.Phone)
	c.Address = strings.TrimSpace(input.Address)
	c.TaxID = strings.TrimSpace(input.TaxID)
	c.Notes = input.Notes
	return nil
}

// CanReceive reports whether documents of kind may be addressed to this
// contact: invoices go to customers, bills come from vendors
func (c *Contact) CanReceive(documentKind string) bool {
	switch documentKind {
	case "invoice":
		return c.Kind == ContactCustomer
	case "bill":
		return c.Kind == ContactVendor
	}
	return false
}
