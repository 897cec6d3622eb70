package site_api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/BearBump/FreightSite/internal/forms"
	"github.com/BearBump/FreightSite/internal/models"
	"github.com/BearBump/FreightSite/internal/services/submissions"
)

const maxFormBytes = 64 << 10

type submissionResponse struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Source    string             `json:"source"`
	Status    string             `json:"status"`
	Fields    map[string]*string `json:"fields"`
	CreatedAt string             `json:"created_at,omitempty"`
}

func toSubmissionResponse(s *models.Submission) submissionResponse {
	out := submissionResponse{
		ID:     s.ID,
		Kind:   s.Kind,
		Source: s.Source,
		Status: s.Status,
		Fields: s.Fields,
	}
	if !s.CreatedAt.IsZero() {
		out.CreatedAt = s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return out
}

// formFor возвращает экземпляр формы для запроса. Без cookie сессии состояние
// не регистрируется: клиент, который cookie не возвращает, его всё равно не увидит.
func (a *SiteAPI) formFor(r *http.Request, kind string) (*forms.Form, func()) {
	sess := sessionFrom(r)
	if sess.returning {
		return a.forms.Form(sess.id, kind), func() {}
	}
	f := forms.New(kind, 0)
	return f, f.Close
}

// submit проводит заявку через экземпляр формы этой сессии.
// Ошибка, которую видит форма, уже в пользовательском виде.
func (a *SiteAPI) submit(r *http.Request, v submissions.Variant, in map[string]string) (*models.Submission, error) {
	form, release := a.formFor(r, v.Kind)
	defer release()

	var created *models.Submission
	err := form.SubmitWith(r.Context(), in, func(ctx context.Context, values map[string]string) error {
		sub, err := a.subs.Submit(ctx, v, submissions.Input(values))
		var ve *submissions.ValidationError
		switch {
		case err == nil:
			created = sub
			return nil
		case errors.As(err, &ve):
			return ve
		default:
			return submissions.ErrPersist
		}
	})
	return created, err
}

// declaredValues берёт только объявленные поля варианта, отсутствующие становятся пустыми.
func declaredValues(v submissions.Variant, get func(string) string) map[string]string {
	out := make(map[string]string, len(v.Fields))
	for _, f := range v.Fields {
		out[f.Name] = get(f.Name)
	}
	return out
}

// formPost обрабатывает HTML-форму и возвращает браузер на страницу формы,
// где баннер и ошибка берутся из состояния формы.
func (a *SiteAPI) formPost(v submissions.Variant, redirectTo string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}

		_, err := a.submit(r, v, declaredValues(v, r.PostForm.Get))
		if errors.Is(err, forms.ErrInFlight) {
			slog.Info("duplicate submit ignored", "kind", v.Kind)
		}

		target := redirectTo
		if target == "" {
			target = safeReturnTo(r.PostForm.Get("return_to"))
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// safeReturnTo пускает только локальные пути, чтобы не было открытого редиректа.
func safeReturnTo(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return "/"
	}
	return p + "#footer-contact"
}

func (a *SiteAPI) createSubmission(w http.ResponseWriter, r *http.Request) {
	v, ok := submissions.VariantByKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown submission kind", "")
		return
	}

	var in map[string]string
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err := dec.Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object of strings", "")
		return
	}

	sub, err := a.submit(r, v, declaredValues(v, func(name string) string { return in[name] }))
	var ve *submissions.ValidationError
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, toSubmissionResponse(sub))
	case errors.As(err, &ve):
		writeError(w, http.StatusUnprocessableEntity, ve.Message, ve.Field)
	case errors.Is(err, forms.ErrInFlight):
		writeError(w, http.StatusConflict, "submission already in progress", "")
	default:
		writeError(w, http.StatusBadGateway, submissions.ErrPersist.Error(), "")
	}
}
