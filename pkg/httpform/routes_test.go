package httpform_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-dynform/pkg/httpform"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := httpform.MountPath("/admin"); got != "/admin/form" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := httpform.MountPath("admin/", httpform.WithRoutePath("contact")); got != "/admin/contact" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := httpform.MountPath(""); got != "/form" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestRegisterRoutes_Chi(t *testing.T) {
	router := chi.NewRouter()
	pattern, err := httpform.RegisterRoutes(router, "/admin", contactFactory, &recordingRenderer{},
		httpform.WithRoutePath("/contact"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/admin/contact" {
		t.Fatalf("unexpected pattern %q", pattern)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, pattern, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRegisterRoutes_ServeMux(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := httpform.RegisterRoutes(mux, "", contactFactory, &recordingRenderer{})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	rec := post(mux, pattern, validPost())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRegisterRoutes_Validates(t *testing.T) {
	if _, err := httpform.RegisterRoutes(nil, "", contactFactory, &recordingRenderer{}); !errors.Is(err, httpform.ErrMissingMux) {
		t.Fatalf("expected ErrMissingMux, got %v", err)
	}
	if _, err := httpform.RegisterRoutes(http.NewServeMux(), "", nil, &recordingRenderer{}); !errors.Is(err, httpform.ErrMissingFactory) {
		t.Fatalf("expected ErrMissingFactory, got %v", err)
	}
	if _, err := httpform.RegisterRoutes(http.NewServeMux(), "", contactFactory, nil); !errors.Is(err, httpform.ErrMissingRenderer) {
		t.Fatalf("expected ErrMissingRenderer, got %v", err)
	}
}
