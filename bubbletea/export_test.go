package bubbletea

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	content, _ := m.renderContent()
	return content
}

// Offsets returns the first content line of each bubble.
func Offsets(m Model) []int {
	return m.offsets
}
