package config

const (
	// User-facing
	ErrEmptyMessage = "Message cannot be empty"

	// Config errors
	ErrParseConfigFmt = "failed to parse config file: %w"

	// Start-up errors
	ErrInitializeDatabaseFmt = "Failed to initialize database: %w"
	ErrOpenLogFileFmt        = "Failed to open log file: %w"

	// Request errors
	ErrLoadMessages  = "Error loading messages"
	ErrCreateMessage = "Error creating message"
	ErrUpdateMessage = "Error updating message"
	ErrDeleteMessage = "Error deleting message"
	ErrSaveDraft     = "Error saving draft"
	ErrDeleteDraft   = "Error deleting draft"
)
