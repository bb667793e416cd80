package dto

import "time"

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
	ExportFormatICS = "ics"
)

// ExportQuery selects the format and ordering of an export.
type ExportQuery struct {
	Format string `form:"format" validate:"required,oneof=csv pdf ics"`
	Order  string `form:"order" validate:"omitempty,oneof=asc desc ASC DESC"`
	Query  string `form:"q" validate:"max=200"`
}

// ExportFile is a rendered export ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportLink is a signed, time-limited download URL for a stored export.
type ExportLink struct {
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	ExpiresAt time.Time `json:"expiresAt"`
}
