package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := string(RenderMarkdown("**加粗** <script>alert(1)</script>"))
	assert.Contains(t, out, "<strong>加粗</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestRenderMarkdownEnhancesImages(t *testing.T) {
	out := string(RenderMarkdown("![配图](https://i.imgur.com/a.png)"))
	assert.Contains(t, out, `loading="lazy"`)
	assert.Contains(t, out, `referrerpolicy="no-referrer"`)
}
