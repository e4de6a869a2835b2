package model

import "github.com/goliatone/go-dynform/internal/slug"

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into NewBuilder.
type Options struct {
	Slugger func(string) string
}

func defaultOptions() Options {
	return Options{
		Slugger: slug.Make,
	}
}
