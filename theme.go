package chatmsg

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. A negative index means no color.
type Theme struct {
	UserMsg   int // User bubble border and accent
	Assistant int // Assistant bubble border
	Reasoning int // Reasoning block text
	Error     int // Error messages
	Success   int // Copied indicator
	Muted     int // Model label, status bar, placeholders
	CodeBg    int // Inline code background
	Accent    int // Headings, focused code header
	Link      int // Link text
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:   4,
		Assistant: 8,
		Reasoning: 8,
		Error:     1,
		Success:   2,
		Muted:     8,
		CodeBg:    0,
		Accent:    5,
		Link:      4,
	}
}
