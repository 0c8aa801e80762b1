package di

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/dime/errors"
	"github.com/kbukum/dime/logger"
	"github.com/kbukum/dime/observability"
	"github.com/kbukum/dime/provider"
	"github.com/kbukum/dime/registry"
	"github.com/kbukum/dime/token"
)

// bundleName names the synthetic package that all mounted packages are
// flattened into.
const bundleName = "Dime"

// SetupBuilder accumulates packages for a mount. It has no side effects
// until Load.
type SetupBuilder struct {
	d        *Dime
	packages []*provider.Package
}

// Configure starts a mount.
//
//	err := d.Configure().WithPackages(core, http).Lazy().Load()
func (d *Dime) Configure() *SetupBuilder {
	return &SetupBuilder{d: d}
}

// WithPackages appends packages in order.
func (b *SetupBuilder) WithPackages(packages ...*provider.Package) *SetupBuilder {
	b.packages = append(b.packages, packages...)
	return b
}

// Lazy returns a loader that mounts the accumulated packages when Load is
// called.
func (b *SetupBuilder) Lazy() *Loader {
	packages := make([]*provider.Package, len(b.packages))
	copy(packages, b.packages)
	return &Loader{d: b.d, packages: packages}
}

// Loader mounts a fixed list of packages.
type Loader struct {
	d        *Dime
	packages []*provider.Package
}

// Load mounts the packages.
func (l *Loader) Load() error {
	return l.LoadContext(context.Background())
}

// LoadContext mounts the packages, tracing the mount under ctx.
func (l *Loader) LoadContext(ctx context.Context) error {
	return l.d.MountPackagesContext(ctx, l.packages...)
}

// MountPackages installs the providers of packages into the registry and
// fires the mount event.
func (d *Dime) MountPackages(packages ...*provider.Package) error {
	return d.MountPackagesContext(context.Background(), packages...)
}

// MountPackagesContext installs every provider of packages in order. A
// provider whose canonical name is already registered aborts the mount with
// a mounting error; providers installed before it stay installed. After the
// last provider the mount event fires once and the joined errors of its
// subscribers are returned.
func (d *Dime) MountPackagesContext(ctx context.Context, packages ...*provider.Package) (err error) {
	mountID := uuid.NewString()
	start := time.Now()

	ctx, span := observability.StartSpan(ctx, observability.SpanMount,
		trace.WithAttributes(attribute.String(observability.AttrMountID, mountID)),
	)
	defer func() {
		status := observability.StatusSuccess
		if err != nil {
			status = observability.StatusFailure
		}
		d.metrics.RecordMount(ctx, status, time.Since(start))
		observability.EndSpan(span, err)
	}()

	installed, err := d.install(ctx, mountID, packages)
	span.SetAttributes(attribute.Int(observability.AttrProviders, installed))
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			if pkg, ok := appErr.Details[errors.DetailPackage].(string); ok {
				span.SetAttributes(attribute.String(observability.AttrPackage, pkg))
			}
			if tok, ok := appErr.Details[errors.DetailToken].(string); ok {
				span.SetAttributes(attribute.String(observability.AttrToken, tok))
			}
		}
		d.log.Error("Mount failed", logger.MergeWithError(
			logger.Fields(logger.FieldMountID, mountID, logger.FieldProviders, installed), err))
		return err
	}

	d.log.Info("Packages mounted", logger.Fields(
		logger.FieldMountID, mountID,
		logger.FieldProviders, installed,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))

	if err := d.done.Fire(); err != nil {
		d.log.Error("Injection failed after mount", logger.MergeWithError(
			logger.Fields(logger.FieldMountID, mountID), err))
		return err
	}
	return nil
}

// install writes providers to the registry under the instance lock and
// returns how many were installed. Packages are not merged: a name repeated
// across packages of one call collides like any other registered name. The lock is released before the event
// fires so subscribers may read the registry.
func (d *Dime) install(ctx context.Context, mountID string, packages []*provider.Package) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	installed := 0
	for i, pkg := range packages {
		if pkg == nil {
			return installed, errors.Mounting(bundleName, "", fmt.Sprintf("Received nil package at position %d", i))
		}
		for _, pr := range pkg.Providers() {
			if err := d.installOne(pkg.Name(), pr); err != nil {
				return installed, err
			}
			installed++
			d.metrics.RecordProvider(ctx, pr.Kind.String())
			d.log.Debug("Provider installed", logger.Fields(
				logger.FieldMountID, mountID,
				logger.FieldPackage, pkg.Name(),
				logger.FieldToken, token.Name(pr.Token),
				logger.FieldProviderKind, pr.Kind.String(),
			))
		}
	}
	d.state = Mounted
	return installed, nil
}

func (d *Dime) installOne(pkg string, pr provider.Provider) error {
	if pr.Token == nil {
		return errors.Mounting(pkg, "", "Received provider with no token!")
	}
	name := token.Name(pr.Token)
	if existing, taken := d.registry.Find(func(k token.Token) bool { return token.Match(k, pr.Token) }); taken {
		return errors.Mounting(pkg, name,
			fmt.Sprintf("Provider `%s` collides with registered token `%s`", name, token.Name(existing)))
	}

	switch pr.Kind {
	case provider.KindClass:
		if v := pr.Construct(); v != nil {
			d.registry.Set(pr.Token, v)
			return nil
		}
	case provider.KindValue:
		if v := pr.Value(); v != nil {
			d.registry.Set(pr.Token, v)
			return nil
		}
	case provider.KindFactory:
		if fn := pr.Factory(); fn != nil {
			d.registry.SetProducer(pr.Token, registry.Producer(fn))
			return nil
		}
	}
	return errors.Mounting(pkg, name, fmt.Sprintf("Received provider `%s` with no value!", name))
}
