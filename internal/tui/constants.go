package tui

// UI Layout Constants

const (
	// Form
	InputHeight    = 5  // Visible lines of the text area
	InputMinWidth  = 20 // Narrowest the text area may shrink to
	HeaderLines    = 2  // Title + top-k line
	StatusBarLines = 1

	// Borders and padding
	BoxBorderWidth    = 2 // Width consumed by rounded borders
	BoxPaddingWidth   = 2 // Horizontal padding inside boxes
	ModalWidthMargin  = 6 // Help overlay horizontal margin
	ModalHeightMargin = 4 // Help overlay vertical margin

	// Messages
	MaxFooterMessage = 100 // Longer messages are truncated in the status bar
)
