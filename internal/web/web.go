// Package web рендерит страницы сайта из встроенных pongo2-шаблонов.
package web

import (
	"bytes"
	"embed"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Имена страниц совпадают с файлами в templates/.
const (
	PageHome          = "home.html"
	PagePrivacy       = "privacy.html"
	PageTerms         = "terms.html"
	PageLegal         = "legal.html"
	PageBecomePartner = "partner.html"
	PageContact       = "contact.html"
	PageTrack         = "track.html"
	PageNotFound      = "not_found.html"
)

type Context = pongo2.Context

type Renderer struct {
	set *pongo2.TemplateSet

	mu        sync.RWMutex
	templates map[string]*pongo2.Template
}

func New() (*Renderer, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, errors.Wrap(err, "templates fs")
	}
	registerFilters()

	return &Renderer{
		set:       pongo2.NewSet("freightsite", pongo2.NewFSLoader(sub)),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

// Render пишет страницу целиком в буфер и только потом в w,
// чтобы ошибка шаблона не оставляла полстраницы.
func (r *Renderer) Render(w io.Writer, name string, data Context) error {
	tmpl, err := r.template(name)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(data, &buf); err != nil {
		return errors.Wrapf(err, "render %s", name)
	}
	_, err = buf.WriteTo(w)
	return err
}

func (r *Renderer) template(name string) (*pongo2.Template, error) {
	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if tmpl, ok := r.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := r.set.FromFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "load template %s", name)
	}
	r.templates[name] = tmpl
	return tmpl, nil
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Sanitize strips any markup from free text that comes from outside the site,
// such as delay reasons written by the operational system. The result is an
// HTML fragment: text is already escaped, so it must not be escaped again.
func Sanitize(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(textPolicy.Sanitize(raw))
}

// plaintext выводит внешний текст без разметки; автоэкранирование уже не нужно.
func registerFilters() {
	if !pongo2.FilterExists("plaintext") {
		_ = pongo2.RegisterFilter("plaintext", func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return pongo2.AsSafeValue(Sanitize(in.String())), nil
		})
	}
}
