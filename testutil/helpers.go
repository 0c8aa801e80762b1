package testutil

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/kbukum/dime/config"
	"github.com/kbukum/dime/di"
	"github.com/kbukum/dime/logger"
	"github.com/kbukum/dime/provider"
)

// NewDime creates an isolated instance with logging, metrics and the inject
// timeout disabled, mounts packages into it and tears it down when the test
// ends.
//
//	d := testutil.NewDime(t, corePackage)
func NewDime(t testing.TB, packages ...*provider.Package) *di.Dime {
	t.Helper()
	return T(t).Mount(packages...)
}

// MustPackage builds a package or fails the test.
func MustPackage(t testing.TB, name string, entries ...provider.Entry) *provider.Package {
	t.Helper()
	p, err := provider.NewPackage(name, entries...)
	if err != nil {
		t.Fatalf("failed to build package %s: %v", name, err)
	}
	return p
}

// QuietSettings returns default settings with the inject timeout disabled.
func QuietSettings() config.Settings {
	s := config.DefaultSettings()
	s.InjectTimeout = 0
	return s
}

// THelper provides testing.T integration for easier test setup.
type THelper struct {
	t    testing.TB
	ctx  context.Context
	opts []di.Option
}

// T wraps a testing.TB to provide helper methods.
//
//	func TestSignup(t *testing.T) {
//	    d := testutil.T(t).WithOptions(di.WithLogger(logs.Logger("debug"))).Mount(core)
//	    // d is torn down when the test ends
//	}
func T(t testing.TB) *THelper {
	return &THelper{
		t:   t,
		ctx: context.Background(),
		opts: []di.Option{
			di.WithLogger(logger.Nop()),
			di.WithMetrics(nil),
			di.WithSettings(QuietSettings()),
		},
	}
}

// WithContext sets the context used for mounting.
func (h *THelper) WithContext(ctx context.Context) *THelper {
	h.ctx = ctx
	return h
}

// WithOptions appends instance options. Later options override the quiet
// defaults.
func (h *THelper) WithOptions(opts ...di.Option) *THelper {
	h.opts = append(h.opts, opts...)
	return h
}

// New creates an unmounted instance torn down when the test ends.
func (h *THelper) New() *di.Dime {
	d := di.New(h.opts...)
	h.t.Cleanup(d.TearDown)
	return d
}

// Mount creates an instance and mounts packages into it, failing the test
// on a mount error.
func (h *THelper) Mount(packages ...*provider.Package) *di.Dime {
	h.t.Helper()
	d := h.New()
	if err := d.MountPackagesContext(h.ctx, packages...); err != nil {
		h.t.Fatalf("failed to mount packages: %v", err)
	}
	return d
}

// LogBuffer collects log output and is safe for concurrent writes, such as
// warnings logged from timers.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer.
func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything written so far.
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Logger returns a JSON logger at level writing into the buffer.
func (b *LogBuffer) Logger(level string) *logger.Logger {
	return logger.NewWithWriter(&logger.Config{Level: level, Format: "json"}, b, "test")
}
