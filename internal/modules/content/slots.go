package content

import (
	"html/template"

	"github.com/BuildLoopLLC/clearview-core/internal/models"
)

// Slot names the page templates look up within a section. Keeping them as
// typed constants (instead of ad-hoc strings at every call site) makes a
// missing slot a reviewable case rather than a silent blank.
type Slot string

const (
	SlotHeadline    Slot = "headline"
	SlotSubheadline Slot = "subheadline"
	SlotBody        Slot = "body"
	SlotImage       Slot = "image"
	SlotButtonText  Slot = "buttonText"
	SlotButtonLink  Slot = "buttonLink"
)

// TrustedHTML marks a content payload that is injected into pages without
// sanitization. Admin editors are the only writers of this content; the
// passthrough matches how the site has always rendered editor markup,
// inline styles included. Wrap at the injection point only.
type TrustedHTML = template.HTML

// ResolveSlot picks the item for a named slot out of a section's list:
// first the item whose metadata name matches, else the first rich item,
// else the first item, else nil.
func ResolveSlot(items []models.ContentItemModel, slot Slot) *models.ContentItemModel {
	for i := range items {
		if items[i].Name() == string(slot) {
			return &items[i]
		}
	}
	for i := range items {
		if items[i].IsRich() {
			return &items[i]
		}
	}
	if len(items) > 0 {
		return &items[0]
	}
	return nil
}

// SlotHTML renders a resolved item for injection: rich content passes
// through as TrustedHTML, plain text is escaped, a missing item renders
// as the empty string.
func SlotHTML(item *models.ContentItemModel) TrustedHTML {
	if item == nil {
		return ""
	}
	if item.IsRich() {
		return TrustedHTML(item.Content)
	}
	return TrustedHTML(template.HTMLEscapeString(item.Content))
}
