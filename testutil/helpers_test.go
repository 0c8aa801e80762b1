package testutil

import (
	"strings"
	"testing"

	"github.com/kbukum/dime/di"
	"github.com/kbukum/dime/provider"
	"github.com/kbukum/dime/token"
)

func TestNewDimeMounts(t *testing.T) {
	d := NewDime(t, MustPackage(t, "Core", provider.UseValue(token.String("port"), 8080)))
	if d.State() != di.Mounted {
		t.Fatalf("expected mounted, got %s", d.State())
	}
	if v := di.MustResolve[int](d, token.String("port")); v != 8080 {
		t.Errorf("expected 8080, got %d", v)
	}
	if d.Settings().InjectTimeout != 0 {
		t.Errorf("expected timeout disabled, got %v", d.Settings().InjectTimeout)
	}
}

func TestHelperNewIsUnmounted(t *testing.T) {
	d := T(t).New()
	if d.State() != di.Unmounted {
		t.Errorf("expected unmounted, got %s", d.State())
	}
}

func TestTearDownOnCleanup(t *testing.T) {
	var d *di.Dime
	t.Run("inner", func(t *testing.T) {
		d = NewDime(t, MustPackage(t, "Core", provider.UseValue(token.String("v"), 1)))
	})
	if d.Has(token.String("v")) {
		t.Error("expected registry cleared after the subtest")
	}
}

func TestLogBuffer(t *testing.T) {
	logs := &LogBuffer{}
	d := T(t).WithOptions(di.WithLogger(logs.Logger("debug"))).
		Mount(MustPackage(t, "Core", provider.UseValue(token.String("v"), 1)))

	if !strings.Contains(logs.String(), "Packages mounted") {
		t.Errorf("expected mount log, got %q", logs.String())
	}
	d.TearDown()
	if !strings.Contains(logs.String(), "Registry torn down") {
		t.Errorf("expected teardown log, got %q", logs.String())
	}
}
