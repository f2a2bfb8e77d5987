package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const (
	defaultMarkdownWidth = 80
	defaultMarkdownStyle = "dark"
)

// rendererCache keeps the last glamour renderer, rebuilt when the width or
// style changes.
type rendererCache struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
	width    int
	style    string
}

var renderers rendererCache

func (c *rendererCache) get(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = defaultMarkdownWidth
	}
	if style == "" {
		style = defaultMarkdownStyle
	}

	if c.renderer != nil && width == c.width && style == c.style {
		return c.renderer, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	c.renderer, c.width, c.style = r, width, style
	return r, nil
}

func (c *rendererCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderer, c.width, c.style = nil, 0, ""
}

// RenderMarkdownWithStyle renders markdown content using the specified glamour
// style. The original content is returned if rendering fails.
func RenderMarkdownWithStyle(content string, width int, style string) string {
	if content == "" {
		return ""
	}

	renderers.mu.Lock()
	defer renderers.mu.Unlock()

	r, err := renderers.get(width, style)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// RenderMarkdown renders markdown with the default dark style.
func RenderMarkdown(content string, width int) string {
	return RenderMarkdownWithStyle(content, width, defaultMarkdownStyle)
}
