package content

import (
	"testing"

	"github.com/BuildLoopLLC/clearview-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(name, contentType, content string) models.ContentItemModel {
	meta := map[string]interface{}{}
	if name != "" {
		meta["name"] = name
	}
	return models.ContentItemModel{
		ContentType: contentType,
		Content:     content,
		Metadata:    meta,
	}
}

func TestResolveSlotPrefersNameMatch(t *testing.T) {
	items := []models.ContentItemModel{
		item("subheadline", "richtext", "<p>sub</p>"),
		item("headline", "text", "Welcome"),
	}
	got := ResolveSlot(items, SlotHeadline)
	require.NotNil(t, got)
	assert.Equal(t, "Welcome", got.Content)
}

func TestResolveSlotFallsBackToFirstRichItem(t *testing.T) {
	items := []models.ContentItemModel{
		item("", "text", "plain"),
		item("", "richtext", "<p>rich</p>"),
	}
	got := ResolveSlot(items, SlotHeadline)
	require.NotNil(t, got)
	assert.Equal(t, "<p>rich</p>", got.Content)
}

func TestResolveSlotFallsBackToFirstItem(t *testing.T) {
	items := []models.ContentItemModel{
		item("other", "text", "first"),
		item("another", "text", "second"),
	}
	got := ResolveSlot(items, SlotHeadline)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Content)
}

func TestResolveSlotEmptySection(t *testing.T) {
	assert.Nil(t, ResolveSlot(nil, SlotHeadline))
	assert.Equal(t, TrustedHTML(""), SlotHTML(nil))
}

func TestSlotHTMLEscapesPlainText(t *testing.T) {
	plain := item("headline", "text", `<script>alert("x")</script>`)
	assert.NotContains(t, string(SlotHTML(&plain)), "<script>")

	rich := item("body", "html", "<p class=\"lead\">kept as-is</p>")
	assert.Equal(t, TrustedHTML("<p class=\"lead\">kept as-is</p>"), SlotHTML(&rich))
}
