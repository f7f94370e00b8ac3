package platform

import (
	"context"
	"time"

	"github.com/aretw0/arbor/pkg/adapters/fs"
	"github.com/aretw0/arbor/pkg/core"
)

// Init initializes a store explicitly and returns it, ready for use.
func Init(root string, opts ...Option) (core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store := o.store
	if store == nil {
		store = fs.NewStore(buildConfig(root, o))
	}

	if err := store.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

// New creates a new Arbor Service rooted at the given directory.
//
//	svc, err := arbor.New("./notes", arbor.WithLogger(logger))
func New(root string, opts ...Option) (*core.Service, error) {
	store, err := Init(root, opts...)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return core.NewService(store, o.logger), nil
}

// buildConfig maps the generic option bag onto the fs adapter config.
func buildConfig(root string, o *options) fs.Config {
	cfg := fs.Config{
		Root:   root,
		Logger: o.logger,
	}
	if v, ok := o.config["must_exist"].(bool); ok {
		cfg.MustExist = v
	}
	if v, ok := o.config["extension"].(string); ok {
		cfg.Extension = v
	}
	if v, ok := o.config["system_dir"].(string); ok {
		cfg.SystemDir = v
	}
	if v, ok := o.config["stability_window"].(time.Duration); ok {
		cfg.StabilityWindow = v
	}
	if v, ok := o.config["event_buffer"].(int); ok {
		cfg.EventBuffer = v
	}
	if v, ok := o.config["ignore"].([]string); ok {
		cfg.Ignore = v
	}
	if v, ok := o.config["watcher_error_handler"].(func(error)); ok {
		cfg.ErrorHandler = v
	}
	return cfg
}
