package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/httpform"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/bulma"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [descriptors.yaml]",
		Short: "Serve a form over HTTP",
		Long: `Serve the form on --route. GET renders it, POST validates the urlencoded
body: valid submissions are answered with their JSON payload, invalid ones
with the re-rendered form and status 422.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.runServe(ctx, args)
		},
	}
	flags := cmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.String("route", httpform.DefaultRoutePath, "route the form is served on")
	flags.String("renderer", bulma.Name, "renderer used for GET and rejected posts")
	return cmd
}

func (a *app) runServe(ctx context.Context, args []string) error {
	router, err := a.router(args)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              a.config.GetString("addr"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		a.logger.Info("serving form", "addr", server.Addr, "route", a.config.GetString("route"))
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}

// router mounts the form handler and a health probe on a chi router.
func (a *app) router(args []string) (chi.Router, error) {
	source, err := a.source(args)
	if err != nil {
		return nil, err
	}
	gen, err := a.orchestrator()
	if err != nil {
		return nil, err
	}
	renderer, err := gen.Renderer(a.config.GetString("renderer"))
	if err != nil {
		return nil, err
	}

	// Build once up front so a broken document fails at startup, not on the
	// first request.
	_, doc, err := gen.Build(context.Background(), source)
	if err != nil {
		return nil, err
	}
	factory := func(ctx context.Context) (*form.Form, error) {
		f, _, err := gen.Build(ctx, orchestrator.DocumentSource(doc))
		return f, err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	_, err = httpform.RegisterRoutes(router, "", factory, renderer,
		httpform.WithRoutePath(a.config.GetString("route")),
		httpform.WithRenderOptions(render.RenderOptions{HasIcon: doc.HasIcon}),
		httpform.WithLogger(a.logger),
		httpform.WithOnSubmit(func(ctx context.Context, s form.Submission) error {
			a.logger.Info("submission received", "form", s.FormName, "submission", s.ID,
				"request", middleware.GetReqID(ctx))
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return router, nil
}
