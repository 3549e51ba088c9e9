package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/openbindings/binding-go/discovery"
	"github.com/openbindings/binding-go/manifest"
)

func (a *app) validateOptions(strict bool) []manifest.ValidateOption {
	if !strict && !a.cfg.Strict {
		return nil
	}
	return []manifest.ValidateOption{
		manifest.WithRejectUnknownFields(),
		manifest.WithRequireSupportedVersion(),
	}
}

// discover loads and validates the manifest at path and imports it into a
// new Discovery.
func (a *app) discover(path string) (*discovery.Discovery, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(a.validateOptions(false)...); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	bundle, err := m.Build(nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	d, err := discovery.New(discovery.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	if _, err := d.Import(bundle.Types, bundle.Bindings); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Info("manifest loaded",
		zap.String("path", path),
		zap.Int("types", len(bundle.Types)),
		zap.Int("bindings", len(bundle.Bindings)),
	)
	return d, nil
}
