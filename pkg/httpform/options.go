package httpform

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/render"
)

const (
	DefaultRoutePath    = "/form"
	DefaultMaxBodyBytes = 1 << 20
	DefaultCSRFField    = "_csrf"
)

// GuardFunc runs before every request. A non-nil error rejects it; errors
// implementing HTTPError choose the status code.
type GuardFunc func(r *http.Request) error

// SubmitFunc receives every accepted submission before the response is
// written. An error turns the response into a failure.
type SubmitFunc func(ctx context.Context, submission form.Submission) error

// TokenFunc returns the CSRF token to embed in a rendered form.
type TokenFunc func(r *http.Request) string

type Options struct {
	RoutePath    string
	MaxBodyBytes int64
	Guard        GuardFunc
	OnSubmit     SubmitFunc
	CSRFField    string
	CSRFToken    TokenFunc
	Render       render.RenderOptions
	Logger       *slog.Logger
}

// Option mutates handler options.
type Option func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    DefaultRoutePath,
		MaxBodyBytes: DefaultMaxBodyBytes,
		CSRFField:    DefaultCSRFField,
	}
}

// NewOptions applies fns over DefaultOptions and restores defaults for
// settings left empty.
func NewOptions(fns ...Option) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = DefaultRoutePath
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.CSRFField == "" {
		opts.CSRFField = DefaultCSRFField
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return opts
}

func WithRoutePath(path string) Option {
	return func(o *Options) {
		o.RoutePath = path
	}
}

func WithMaxBodyBytes(limit int64) Option {
	return func(o *Options) {
		o.MaxBodyBytes = limit
	}
}

func WithGuard(guard GuardFunc) Option {
	return func(o *Options) {
		o.Guard = guard
	}
}

// WithOnSubmit registers a callback for accepted submissions.
func WithOnSubmit(fn SubmitFunc) Option {
	return func(o *Options) {
		o.OnSubmit = fn
	}
}

// WithCSRFToken embeds the token returned by fn as a hidden input named
// field. Verifying the token is left to the guard.
func WithCSRFToken(field string, fn TokenFunc) Option {
	return func(o *Options) {
		o.CSRFField = field
		o.CSRFToken = fn
	}
}

// WithRenderOptions sets the base options passed to the renderer. Submit is
// always enabled on top of them.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(o *Options) {
		o.Render = opts
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
