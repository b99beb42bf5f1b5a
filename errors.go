package chatmsg

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrInvalidContent indicates message content is neither a string nor
	// a sequence of parts.
	ErrInvalidContent = errors.New("invalid message content")

	// ErrEmptyTranscript indicates a transcript source contained no messages.
	ErrEmptyTranscript = errors.New("transcript has no messages")

	// ErrClipboardUnavailable indicates no clipboard mechanism accepted the text.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)
