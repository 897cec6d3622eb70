package site_api

import (
	"net/http"
)

func (a *SiteAPI) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *SiteAPI) readyz(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]string, len(a.opts.ReadyChecks))
	status := http.StatusOK
	for name, check := range a.opts.ReadyChecks {
		if err := check(r.Context()); err != nil {
			out[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		out[name] = "ok"
	}
	writeJSON(w, status, out)
}
