package bubbletea

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmsg"
	"github.com/mattn/go-runewidth"
)

// Thumbnail bounds in terminal cells. Each cell row holds two pixel rows.
const (
	thumbRows = 8
	thumbCols = 32
)

// renderImages draws each image above the message text, in order. Inline
// data URLs are decoded and drawn with half-block cells; any other URL is
// shown as a framed label since nothing is fetched.
func renderImages(images []chatmsg.ImageContent, width int, styles Styles) string {
	if len(images) == 0 {
		return ""
	}
	views := make([]string, len(images))
	for i, img := range images {
		label := fmt.Sprintf("Upload %d", i+1)
		if decoded, err := decodeDataURL(img.URL); err == nil {
			views[i] = halfBlocks(decoded, min(width, thumbCols), thumbRows)
			continue
		}
		views[i] = imageLabel(label, img.URL, width, styles)
	}
	return strings.Join(views, "\n")
}

func imageLabel(label, rawURL string, width int, styles Styles) string {
	inner := width - styles.ImageFrame.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}
	text := label
	if u := displayURL(rawURL); u != "" {
		text += " " + styles.Muted.Render(runewidth.Truncate(u, max(inner-runewidth.StringWidth(label)-1, 1), "…"))
	}
	return styles.ImageFrame.Render(text)
}

func displayURL(raw string) string {
	if strings.HasPrefix(raw, "data:") {
		mediaType, _, _ := strings.Cut(strings.TrimPrefix(raw, "data:"), ",")
		return "data:" + mediaType
	}
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host + u.Path
	}
	return raw
}

// decodeDataURL decodes a base64 data URL holding a PNG, JPEG or GIF.
func decodeDataURL(raw string) (image.Image, error) {
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URL")
	}
	meta, data, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URL")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("data URL is not base64 encoded")
	}
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// halfBlocks scales img to fit within cols x rows cells, keeping its aspect
// ratio, and draws it with upper half blocks: the foreground is the top
// pixel and the background the bottom one.
func halfBlocks(img image.Image, cols, rows int) string {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 || cols < 1 {
		return ""
	}
	tw, th := w, h
	maxH := rows * 2
	if tw > cols {
		th = max(th*cols/tw, 1)
		tw = cols
	}
	if th > maxH {
		tw = max(tw*maxH/th, 1)
		th = maxH
	}

	at := func(x, y int) color.Color {
		return img.At(bounds.Min.X+x*w/tw, bounds.Min.Y+y*h/th)
	}

	var b strings.Builder
	for y := 0; y < th; y += 2 {
		if y > 0 {
			b.WriteString("\n")
		}
		for x := 0; x < tw; x++ {
			cell := lipgloss.NewStyle().Foreground(hexColor(at(x, y)))
			if y+1 < th {
				cell = cell.Background(hexColor(at(x, y+1)))
			}
			b.WriteString(cell.Render("▀"))
		}
	}
	return b.String()
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
