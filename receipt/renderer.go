package receipt

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/ohm-hive/orders-api/models"
)

//go:embed templates/receipt.html
var templateFS embed.FS

// Renderer produces the printable HTML receipt
type Renderer struct {
	tmpl *template.Template
	now  func() time.Time
}

// NewRenderer parses the embedded receipt template
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/receipt.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse receipt template: %w", err)
	}
	return &Renderer{tmpl: tmpl, now: time.Now}, nil
}

var defaultRenderer = mustRenderer()

func mustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the shared renderer
func Default() *Renderer {
	return defaultRenderer
}

// Render writes the receipt for order in lang to w
func (r *Renderer) Render(w io.Writer, order *models.Order, lang string) error {
	view, err := NewView(order, lang, r.now())
	if err != nil {
		return err
	}
	if err := r.tmpl.ExecuteTemplate(w, "receipt.html", view); err != nil {
		return fmt.Errorf("failed to render receipt: %w", err)
	}
	return nil
}
