package chatmsg

// Props are the caller-supplied display inputs of a message bubble.
// All fields default to false.
type Props struct {
	Selected   bool
	Recent     bool
	InsertMode bool
	Loading    bool
}

// Expanded reports whether the full content is shown instead of the preview.
// Loading has no effect on it.
func Expanded(p Props) bool {
	return p.Selected || (p.Recent && p.InsertMode)
}
