package site_api

import (
	"log/slog"
	"net/http"

	"github.com/BearBump/FreightSite/internal/services/submissions"
	"github.com/BearBump/FreightSite/internal/web"
)

// pageForms: какие формы показывает каждая страница, кроме формы в подвале.
var pageForms = map[string]map[string]string{
	web.PageContact:       {"contact": submissions.KindContactPage},
	web.PageBecomePartner: {"consultation": submissions.KindConsultation, "application": submissions.KindPartnerApplication},
}

func (a *SiteAPI) pageContext(r *http.Request, page string) web.Context {
	sid := sessionID(r)
	ctx := web.Context{
		"path":        r.URL.Path,
		"year":        a.now().Year(),
		"footer":      a.forms.Peek(sid, submissions.KindFooterContact),
		"departments": submissions.Departments,
		"urgencies":   submissions.Urgencies,
	}
	for name, kind := range pageForms[page] {
		ctx[name] = a.forms.Peek(sid, kind)
	}
	return ctx
}

func (a *SiteAPI) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.render(w, http.StatusOK, name, a.pageContext(r, name))
	}
}

func (a *SiteAPI) notFound(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusNotFound, web.PageNotFound, a.pageContext(r, web.PageNotFound))
}

func (a *SiteAPI) render(w http.ResponseWriter, status int, name string, data web.Context) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := a.pages.Render(w, name, data); err != nil {
		slog.Error("render page", "page", name, "err", err)
	}
}
