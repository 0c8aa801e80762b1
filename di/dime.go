package di

import (
	"fmt"
	"sync"

	"github.com/kbukum/dime/config"
	"github.com/kbukum/dime/event"
	"github.com/kbukum/dime/logger"
	"github.com/kbukum/dime/observability"
	"github.com/kbukum/dime/registry"
	"github.com/kbukum/dime/token"
)

// State is the lifecycle state of a Dime instance.
type State int

const (
	Unmounted State = iota // registry empty or mount not completed
	Mounted                // a mount completed and fired the event
)

func (s State) String() string {
	if s == Mounted {
		return "mounted"
	}
	return "unmounted"
}

// Dime owns a registry, the mount-complete event and the injector that
// reads the registry.
type Dime struct {
	registry *registry.KeyMap
	done     *event.OneShot
	injector *MapInjector
	log      *logger.Logger
	metrics  *observability.Metrics
	settings config.Settings

	mu    sync.Mutex
	state State
}

// Option configures a Dime instance.
type Option func(*Dime)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *logger.Logger) Option {
	return func(d *Dime) {
		if l == nil {
			l = logger.Nop()
		}
		d.log = l.WithComponent("di")
	}
}

// WithMetrics sets the metric instruments. Nil disables recording.
func WithMetrics(m *observability.Metrics) Option {
	return func(d *Dime) { d.metrics = m }
}

// WithSettings replaces the runtime settings.
func WithSettings(s config.Settings) Option {
	return func(d *Dime) { d.settings = s }
}

// New creates an isolated, unmounted instance.
func New(opts ...Option) *Dime {
	d := &Dime{
		registry: registry.New(),
		done:     event.New(),
		log:      logger.GetGlobalLogger().WithComponent("di"),
		metrics:  observability.DefaultMetrics(),
		settings: config.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.injector = &MapInjector{keys: d.registry, metrics: d.metrics}
	return d
}

var (
	defaultOnce sync.Once
	defaultDime *Dime
)

// Default returns the process-wide instance. Its settings come from
// config.Load; if loading fails the defaults are used and a warning is logged.
func Default() *Dime {
	defaultOnce.Do(func() {
		settings, err := config.Load()
		if err != nil {
			logger.Warn("dime settings not loaded, using defaults", logger.ErrorFields("load_settings", err))
			settings = config.DefaultSettings()
		}
		defaultDime = New(
			WithSettings(settings),
			WithLogger(logger.New(&settings.Logging, "dime")),
		)
	})
	return defaultDime
}

// Injector returns the injector reading this instance's registry.
func (d *Dime) Injector() Injector { return d.injector }

// Event returns the mount-complete event.
func (d *Dime) Event() *event.OneShot { return d.done }

// Settings returns the runtime settings.
func (d *Dime) Settings() config.Settings { return d.settings }

// Logger returns the instance logger.
func (d *Dime) Logger() *logger.Logger { return d.log }

// State returns the lifecycle state.
func (d *Dime) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Get resolves tok through the injector.
func (d *Dime) Get(tok token.Token) (any, error) { return d.injector.Get(tok) }

// GetValidToken returns the registry key matching tok.
func (d *Dime) GetValidToken(tok token.Token) (token.Token, bool) {
	return d.injector.GetValidToken(tok)
}

// Has reports whether tok resolves.
func (d *Dime) Has(tok token.Token) bool { return d.injector.Has(tok) }

// Binding describes one registry entry.
type Binding struct {
	Token    string `json:"token"`
	Producer bool   `json:"producer"`
	Type     string `json:"type,omitempty"`
}

// Bindings lists the registry entries in insertion order. Producers are not
// invoked, so their Type is empty.
func (d *Dime) Bindings() []Binding {
	keys := d.registry.Keys()
	out := make([]Binding, 0, len(keys))
	for _, k := range keys {
		out = append(out, d.describe(k))
	}
	return out
}

// Lookup describes the entry matching tok.
func (d *Dime) Lookup(tok token.Token) (Binding, bool) {
	key, ok := d.GetValidToken(tok)
	if !ok {
		return Binding{}, false
	}
	return d.describe(key), true
}

func (d *Dime) describe(key token.Token) Binding {
	b := Binding{Token: token.Name(key), Producer: d.registry.IsProducer(key)}
	if !b.Producer {
		if v, ok := d.registry.Get(key); ok {
			b.Type = fmt.Sprintf("%T", v)
		}
	}
	return b
}

// TearDown empties the registry and re-arms the mount event so the instance
// can be mounted again. Injection points declared before the next mount
// resolve against it.
func (d *Dime) TearDown() {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := d.registry.Len()
	d.registry.Clear()
	d.done.Reset()
	d.state = Unmounted

	d.log.Info("Registry torn down", logger.Fields(logger.FieldProviders, n))
}
