package render

import (
	"html/template"
	"net/http"

	"github.com/BuildLoopLLC/clearview-core/internal/modules/content"
	"github.com/BuildLoopLLC/clearview-core/internal/pkg/contentcache"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler renders a section's content items into a standalone HTML page.
// It is the server-side twin of the site's page components: slot lookup,
// rich-vs-plain injection, and a friendly fallback when the store is
// unreachable.
type Handler struct {
	cache *contentcache.Cache
	log   *zap.Logger
}

func NewHandler(cache *contentcache.Cache, log *zap.Logger) *Handler {
	return &Handler{cache: cache, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/render/:section", h.page)
}

type slotView struct {
	Name string
	HTML content.TrustedHTML
}

type pageView struct {
	Section  string
	Headline content.TrustedHTML
	Slots    []slotView
}

var pageTpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Section}} — ClearView Retreat</title>
</head>
<body>
<main data-section="{{.Section}}">
{{if .Headline}}<h1>{{.Headline}}</h1>{{end}}
{{range .Slots}}<section{{if .Name}} data-slot="{{.Name}}"{{end}}>{{.HTML}}</section>
{{end}}</main>
</body>
</html>`))

var fallbackTpl = template.Must(template.New("fallback").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>ClearView Retreat</title></head>
<body><main><p>Content is on its way — please check back soon.</p></main></body>
</html>`))

func (h *Handler) page(c *gin.Context) {
	section := c.Param("section")

	items, err := h.cache.Get(c.Request.Context(), section)
	if err != nil {
		// Fail closed to a friendly page, never a raw error.
		h.log.Error("render fetch failed", zap.String("section", section), zap.Error(err))
		h.write(c, fallbackTpl, nil)
		return
	}

	view := pageView{Section: section}
	if headline := content.ResolveSlot(items, content.SlotHeadline); headline != nil {
		view.Headline = content.SlotHTML(headline)
	}
	for i := range items {
		item := &items[i]
		if item.Name() == string(content.SlotHeadline) {
			continue
		}
		view.Slots = append(view.Slots, slotView{
			Name: item.Name(),
			HTML: content.SlotHTML(item),
		})
	}

	h.write(c, pageTpl, view)
}

func (h *Handler) write(c *gin.Context, tpl *template.Template, data interface{}) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := tpl.Execute(c.Writer, data); err != nil {
		h.log.Error("render template failed", zap.Error(err))
	}
}
