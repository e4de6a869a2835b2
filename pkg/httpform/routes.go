package httpform

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-dynform/pkg/render"
)

// Mux is the minimal interface required to register a handler. It is
// satisfied by *http.ServeMux and chi.Router.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the route the form is served on under basePath.
func MountPath(basePath string, fns ...Option) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes mounts the form handler under basePath and returns the
// registered pattern.
func RegisterRoutes(mux Mux, basePath string, factory Factory, renderer render.Renderer, fns ...Option) (string, error) {
	switch {
	case mux == nil:
		return "", ErrMissingMux
	case factory == nil:
		return "", ErrMissingFactory
	case renderer == nil:
		return "", ErrMissingRenderer
	}
	opts := NewOptions(fns...)
	pattern := mountPath(basePath, opts.RoutePath)
	mux.Handle(pattern, HandlerWithOptions(factory, renderer, opts))
	return pattern, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/") + routePath
}
