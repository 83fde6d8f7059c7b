package printing

import (
	"time"

	"github.com/google/uuid"
)

// Format is the output format of a printed report
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// IsValid checks if the format is supported
func (f Format) IsValid() bool {
	return f == FormatHTML || f == FormatPDF
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/html; charset=utf-8"
}

// PrintRequest is the query of a single print endpoint
type PrintRequest struct {
	Format  string `form:"format" binding:"omitempty,oneof=html pdf"`
	Archive bool   `form:"archive"`
}

// BatchPrintRequest asks for several documents of one kind at once
type BatchPrintRequest struct {
	IDs    []uuid.UUID `json:"ids" binding:"required,min=1,max=50"`
	Format string      `json:"format" binding:"omitempty,oneof=html pdf"`
}

// PrintResult is a rendered report
type PrintResult struct {
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
	Data        []byte     `json:"data,omitempty"`
	Pages       int        `json:"pages,omitempty"`
	URL         string     `json:"url,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}
