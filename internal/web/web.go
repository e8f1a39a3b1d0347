// Package web holds the embedded page templates and static assets.
package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"strconv"

	"github.com/01moynul/pedidos-portal/internal/models"
	"github.com/01moynul/pedidos-portal/internal/notify"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page is what every template receives.
type Page struct {
	Title   string
	Admin   bool
	Signals notify.Signals
	// Dialog is a blocking validation message rendered as an alert dialog.
	Dialog string
	Data   interface{}
}

func (p Page) Banner() models.Notification {
	return p.Signals.Banner
}

func (p Page) Badge() string {
	if p.Signals.Badge <= 0 {
		return ""
	}
	return strconv.Itoa(p.Signals.Badge)
}

// SignalsJSON seeds the page's Datastar signals. _cuePlayed starts at the
// current cue so a reload does not replay an old sound.
func (p Page) SignalsJSON() string {
	seed := struct {
		notify.Signals
		CuePlayed uint64 `json:"_cuePlayed"`
	}{p.Signals, p.Signals.CueSeq}
	buf, err := json.Marshal(seed)
	if err != nil {
		return "{}"
	}
	return string(buf)
}

// Templates parses every page. Each page is a named template.
func Templates() (*template.Template, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"color": func(s models.Severity) string { return s.ColorClass() },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return t, nil
}

// Static returns the assets served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return sub
}
