package model

import (
	"github.com/goliatone/go-dynform/internal/model"
	"github.com/goliatone/go-dynform/pkg/descriptor"
)

// Resolver turns caller supplied descriptors into resolved fields.
type Resolver interface {
	Resolve(descriptors []descriptor.Descriptor) ([]Field, error)
}

// ResolverOption configures the resolver behaviour.
type ResolverOption func(*resolverOptions)

type resolverOptions struct {
	slugger func(string) string
}

// WithSlugger overrides how identifiers are derived from labels.
func WithSlugger(slugger func(string) string) ResolverOption {
	return func(opts *resolverOptions) {
		opts.slugger = slugger
	}
}

// NewResolver returns a Resolver backed by the internal implementation.
func NewResolver(options ...ResolverOption) Resolver {
	cfg := resolverOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	internalOpts := model.Options{}
	if cfg.slugger != nil {
		internalOpts.Slugger = cfg.slugger
	}
	return model.New(internalOpts)
}

// Resolve flattens descriptors into resolved fields using default options.
func Resolve(descriptors []descriptor.Descriptor) ([]Field, error) {
	return NewResolver().Resolve(descriptors)
}
