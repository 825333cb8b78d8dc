package constants

// Session / context keys
const (
	SessionCookieName  = "relief_session"
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Auth
const MinPasswordLength = 6

// Report submission rules
const (
	MinReportDescriptionLength = 10
	MaxReportAttachments       = 4
	MaxReportAttachmentSize    = 8 << 20 // 8MB
)

// MaxAIGeneratedTasks caps a single AI drafting response.
const MaxAIGeneratedTasks = 20

// AllowedAttachmentTypes lists the accepted report attachment MIME types.
var AllowedAttachmentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}
