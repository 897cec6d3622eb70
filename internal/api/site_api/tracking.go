package site_api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/BearBump/FreightSite/internal/services/tracking"
	"github.com/BearBump/FreightSite/internal/web"
)

const dateLayout = "Jan 2, 2006"

// trackingDisplay is a View prepared for the template.
type trackingDisplay struct {
	TrackingNumber    string
	Status            string
	Headline          string
	OriginState       string
	DestinationState  string
	EstimatedDays     string
	ScheduledDelivery string
	ActualDelivery    string
	Delayed           bool
	DelayReason       string
	Stages            []tracking.Stage
}

func newTrackingDisplay(v *tracking.View) trackingDisplay {
	d := trackingDisplay{
		TrackingNumber:   v.TrackingNumber,
		Status:           string(v.Status),
		Headline:         v.Headline,
		OriginState:      v.OriginState,
		DestinationState: v.DestinationState,
		Delayed:          v.Delayed,
		Stages:           v.Stages,
	}
	if v.EstimatedDays != nil {
		d.EstimatedDays = strconv.Itoa(*v.EstimatedDays)
	}
	d.ScheduledDelivery = formatDate(v.ScheduledDelivery)
	d.ActualDelivery = formatDate(v.ActualDelivery)
	if v.DelayReason != nil {
		// разметку вырезает фильтр plaintext в шаблоне
		d.DelayReason = *v.DelayReason
	}
	return d
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func lookupStatus(err error) int {
	switch {
	case errors.Is(err, tracking.ErrEmptyCode):
		return http.StatusBadRequest
	case errors.Is(err, tracking.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// trackPage показывает форму поиска, а при наличии tracking_number и результат.
func (a *SiteAPI) trackPage(w http.ResponseWriter, r *http.Request) {
	data := a.pageContext(r, web.PageTrack)

	q := r.URL.Query()
	if !q.Has("tracking_number") {
		a.render(w, http.StatusOK, web.PageTrack, data)
		return
	}

	code := q.Get("tracking_number")
	data["code"] = code

	v, err := a.tracking.Lookup(r.Context(), code)
	if err != nil {
		data["tracking_error"] = err.Error()
		status := lookupStatus(err)
		if status == http.StatusBadRequest {
			// пустой ввод на странице не считается ошибкой запроса
			status = http.StatusOK
		}
		a.render(w, status, web.PageTrack, data)
		return
	}
	data["tracking"] = newTrackingDisplay(v)
	a.render(w, http.StatusOK, web.PageTrack, data)
}

func (a *SiteAPI) trackForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	target := "/track-shipment?" + url.Values{"tracking_number": {r.PostForm.Get("tracking_number")}}.Encode()
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (a *SiteAPI) getShipment(w http.ResponseWriter, r *http.Request) {
	v, err := a.tracking.Lookup(r.Context(), chi.URLParam(r, "trackingNumber"))
	if err != nil {
		writeError(w, lookupStatus(err), err.Error(), "")
		return
	}
	writeJSON(w, http.StatusOK, v)
}
