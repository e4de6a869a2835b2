package httpform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

// Factory builds a fresh form for one request. Forms are single owner, so
// the handler never shares one between requests.
type Factory func(ctx context.Context) (*form.Form, error)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

var (
	// ErrMissingMux is returned by RegisterRoutes without a mux.
	ErrMissingMux = errors.New("httpform: missing mux")
	// ErrMissingFactory is returned by RegisterRoutes without a factory.
	ErrMissingFactory = errors.New("httpform: missing form factory")
	// ErrMissingRenderer is returned by RegisterRoutes without a renderer.
	ErrMissingRenderer = errors.New("httpform: missing renderer")
	// ErrFormMismatch reports a post addressed to another form.
	ErrFormMismatch = errors.New("httpform: posted form name does not match")
)

// New serves the form built by factory: GET and HEAD render it, POST applies
// the urlencoded body and submits.
func New(factory Factory, renderer render.Renderer, fns ...Option) http.Handler {
	return HandlerWithOptions(factory, renderer, NewOptions(fns...))
}

// HandlerWithOptions is New with a pre-built Options value.
func HandlerWithOptions(factory Factory, renderer render.Renderer, opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return &handler{factory: factory, renderer: renderer, opts: opts}
}

type handler struct {
	factory  Factory
	renderer render.Renderer
	opts     Options
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeError(w, err, http.StatusForbidden)
			return
		}
	}

	ctx := r.Context()
	f, err := h.factory(ctx)
	if err != nil {
		h.opts.Logger.Error("form factory failed", "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	if r.Method == http.MethodPost {
		h.submit(w, r, f)
		return
	}
	h.render(w, r, f, http.StatusOK)
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request, f *form.Form) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, StatusError{Code: http.StatusBadRequest, Err: err}, http.StatusBadRequest)
		return
	}
	if posted := r.PostForm.Get(render.FormNameField); posted != "" && posted != f.Name() {
		writeError(w, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("%w: %q", ErrFormMismatch, posted)}, http.StatusBadRequest)
		return
	}

	if err := apply(ctx, f, r); err != nil {
		writeError(w, StatusError{Code: http.StatusBadRequest, Err: err}, http.StatusBadRequest)
		return
	}

	submission, err := f.Submit(ctx)
	var invalid *form.InvalidError
	switch {
	case errors.As(err, &invalid):
		h.opts.Logger.Debug("form post rejected", "form", f.Name(), "invalid", len(invalid.Fields))
		h.render(w, r, f, http.StatusUnprocessableEntity)
		return
	case err != nil:
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	if h.opts.OnSubmit != nil {
		if err := h.opts.OnSubmit(ctx, submission); err != nil {
			h.opts.Logger.Error("submission callback failed", "form", f.Name(), "submission", submission.ID, "error", err)
			writeError(w, err, http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(submission)
}

// apply copies posted values onto every input. Keys are field ids; a missing
// key clears the field, as browsers omit unchecked boxes and empty radios.
func apply(ctx context.Context, f *form.Form, r *http.Request) error {
	for _, field := range f.Fields() {
		if !field.IsInput() {
			continue
		}
		posted := r.PostForm[field.ID]
		value := model.Text(firstOf(posted))
		if field.IsMulti() || len(posted) > 1 {
			value = model.List(posted...)
		}
		if err := f.SetValueByID(ctx, field.ID, value); err != nil {
			return err
		}
	}
	return nil
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, f *form.Form, status int) {
	opts := h.opts.Render
	opts.EnableSubmit = true
	if opts.Action == "" {
		opts.Action = r.URL.RequestURI()
	}
	hidden := []render.HiddenField{render.Hidden(render.FormNameField, f.Name())}
	if h.opts.CSRFToken != nil {
		hidden = append(hidden, render.CSRFToken(h.opts.CSRFField, h.opts.CSRFToken(r)))
	}
	opts.Hidden = render.MergeHiddenFields(opts.Hidden, hidden...)

	body, err := h.renderer.Render(r.Context(), f.View(), opts)
	if err != nil {
		h.opts.Logger.Error("form render failed", "form", f.Name(), "renderer", h.renderer.Name(), "error", err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	if code <= 0 {
		code = fallback
	}
	message := http.StatusText(code)
	if code < http.StatusInternalServerError && err != nil {
		message = strings.TrimSpace(err.Error())
	}
	http.Error(w, message, code)
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
