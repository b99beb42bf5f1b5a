// Package json reads and writes chat transcripts in a versioned JSON
// envelope.
package json

import (
	"encoding/json"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/chatmsg"
)

// envelope is the v1 wire format for a persisted transcript.
type envelope struct {
	Version  int          `json:"version"`
	Messages []messageDTO `json:"messages"`
}

// messageDTO is the JSON representation of a Message with a role discriminator.
type messageDTO struct {
	Role      string          `json:"role"`
	Model     string          `json:"model,omitempty"`
	Reasoning string          `json:"reasoning,omitempty"`
	Content   json.RawMessage `json:"content"`
}

// MarshalTranscript serializes messages to JSON in v1 envelope format.
func MarshalTranscript(msgs []chatmsg.Message) ([]byte, error) {
	env := envelope{
		Version:  1,
		Messages: make([]messageDTO, len(msgs)),
	}
	for i, msg := range msgs {
		content, err := EncodeContent(msg.Content)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		role := "assistant"
		if msg.IsUser {
			role = "user"
		}
		env.Messages[i] = messageDTO{
			Role:      role,
			Model:     msg.Model,
			Reasoning: msg.Reasoning,
			Content:   content,
		}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalTranscript deserializes messages from JSON in v1 envelope format.
func UnmarshalTranscript(data []byte) ([]chatmsg.Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return nil, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	msgs := make([]chatmsg.Message, len(env.Messages))
	for i, dto := range env.Messages {
		msg, err := unmarshalMessage(dto)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		msgs[i] = msg
	}
	return msgs, nil
}

func unmarshalMessage(dto messageDTO) (chatmsg.Message, error) {
	var isUser bool
	switch dto.Role {
	case "user":
		isUser = true
	case "assistant":
	default:
		return chatmsg.Message{}, fmt.Errorf("unknown message role: %q", dto.Role)
	}
	content, err := DecodeContent(dto.Content)
	if err != nil {
		return chatmsg.Message{}, err
	}
	return chatmsg.Message{
		Content:   content,
		IsUser:    isUser,
		Reasoning: dto.Reasoning,
		Model:     dto.Model,
	}, nil
}

// Save writes messages to a JSON file, creating parent directories as needed.
func Save(path string, msgs []chatmsg.Message) error {
	data, err := MarshalTranscript(msgs)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads messages from a JSON file. A file with no messages returns
// chatmsg.ErrEmptyTranscript.
func Load(path string) ([]chatmsg.Message, error) {
	msgs, err := load(path)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, chatmsg.ErrEmptyTranscript)
	}
	return msgs, nil
}

func load(path string) ([]chatmsg.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	msgs, err := UnmarshalTranscript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return msgs, nil
}

// LoadGlob reads every file under root matching pattern and concatenates
// their messages in lexical path order. Patterns support ** for recursive
// matching. When no file matches, or the matches hold no messages,
// chatmsg.ErrEmptyTranscript is returned.
func LoadGlob(root, pattern string) ([]chatmsg.Message, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	var matches []string
	err := doublestar.GlobWalk(os.DirFS(root), pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("match pattern: %w", err)
	}
	slices.Sort(matches)

	var msgs []chatmsg.Message
	for _, m := range matches {
		loaded, err := load(filepath.Join(root, filepath.FromSlash(m)))
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, loaded...)
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("%s: %w", pattern, chatmsg.ErrEmptyTranscript)
	}
	return msgs, nil
}

// LoadPath reads a single transcript file, or every file matched when path
// contains glob metacharacters.
func LoadPath(path string) ([]chatmsg.Message, error) {
	if !strings.ContainsAny(path, "*?[{") {
		return Load(path)
	}
	base, pattern := doublestar.SplitPattern(filepath.ToSlash(path))
	return LoadGlob(filepath.FromSlash(base), pattern)
}
