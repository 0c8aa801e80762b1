package inject

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/kbukum/dime/di"
	"github.com/kbukum/dime/errors"
	"github.com/kbukum/dime/logger"
	"github.com/kbukum/dime/token"
)

// Option configures a Point.
type Option func(*options)

type options struct {
	tok token.Token
}

// WithToken binds the point to tok instead of the property name.
func WithToken(tok token.Token) Option {
	return func(o *options) { o.tok = tok }
}

// Point is a deferred injection point for a named property. It resolves its
// registry key when the instance's mount event fires and memoizes the
// injected value per owner.
//
// Owners must be comparable; a pointer to the owning struct is the usual
// choice. Other owners are rejected with an injection error. Call Release
// when an owner is discarded.
type Point[T any] struct {
	d        *di.Dime
	property string
	explicit token.Token

	mu    sync.Mutex
	key   token.Token
	ready bool
	err   error
	memo  map[any]T
	timer *time.Timer
}

// Declare creates a point for property on d. The point subscribes to d's
// mount event. If d is already mounted the point resolves immediately and a
// failed resolution is returned along with the point; otherwise the failure
// is returned by the mount that fires the event. Either way it stays
// available from Err.
//
//	mailer, err := inject.Declare[*Mailer](d, "mailer")
//
//	func (s *Signup) Send() error {
//	    m, err := mailer.Get(s)
//	    ...
//	}
func Declare[T any](d *di.Dime, property string, opts ...Option) (*Point[T], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	p := &Point[T]{
		d:        d,
		property: property,
		explicit: o.tok,
		memo:     make(map[any]T),
	}

	if timeout := d.Settings().InjectTimeout; timeout > 0 && !d.Event().Fired() {
		p.timer = time.AfterFunc(timeout, func() { p.warn(timeout) })
	}

	if err := d.Event().Subscribe(p.resolve); err != nil {
		return p, err
	}
	return p, nil
}

// MustDeclare is like Declare but panics if the point fails to resolve
// immediately. It suits package-level points declared before any mount.
//
//	var mailer = inject.MustDeclare[*Mailer](di.Default(), "mailer")
func MustDeclare[T any](d *di.Dime, property string, opts ...Option) *Point[T] {
	p, err := Declare[T](d, property, opts...)
	if err != nil {
		panic(fmt.Sprintf("inject: %v", err))
	}
	return p
}

// resolve binds the point to the registry key matching its token.
func (p *Point[T]) resolve() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}

	key, ok := p.d.GetValidToken(p.lookup())
	if !ok {
		p.err = p.missError()
		return p.err
	}
	p.key = key
	p.ready = true
	p.err = nil
	return nil
}

func (p *Point[T]) lookup() token.Token {
	if p.explicit != nil {
		return p.explicit
	}
	return token.String(p.property)
}

func (p *Point[T]) missError() error {
	if p.explicit != nil {
		name := token.Name(p.explicit)
		return errors.Injection(name, fmt.Sprintf(
			"Cannot find injectable value for token `%s`! Did you forget to include `%s` in a package?",
			name, name)).WithDetail(errors.DetailProperty, p.property)
	}
	return errors.Injection(p.property, fmt.Sprintf(
		"Cannot find injection token for key `%[1]s`!\n\nPossible causes:\n"+
			" - You forgot to pass a token to inject.Declare\n"+
			" - You forgot to include `%[1]s` in a package\n"+
			" - You misspelled the property name `%[1]s`\n",
		p.property)).WithDetail(errors.DetailProperty, p.property)
}

func (p *Point[T]) warn(timeout time.Duration) {
	p.mu.Lock()
	pending := !p.ready && p.err == nil
	p.mu.Unlock()
	if !pending {
		return
	}
	p.d.Logger().Warn(fmt.Sprintf(
		"Injection point declared but no mount was detected in %s. "+
			"Did you forget to call Configure or MountPackages? "+
			"If your app is slow to start you can ignore this, or raise DIME_INJECT_TIMEOUT (milliseconds).",
		timeout),
		logger.Fields(logger.FieldProperty, p.property, logger.FieldTimeout, timeout.Milliseconds()),
	)
}

// Get returns the value injected for owner. The first call per owner reads
// the injector; later calls return the memoized value or the value stored
// with Set.
func (p *Point[T]) Get(owner any) (T, error) {
	var zero T
	if err := p.checkOwner(owner); err != nil {
		return zero, err
	}

	p.mu.Lock()
	if v, ok := p.memo[owner]; ok {
		p.mu.Unlock()
		return v, nil
	}
	if !p.ready {
		err := p.err
		p.mu.Unlock()
		if err == nil {
			err = errors.Injection(p.property, fmt.Sprintf("Property `%s` was read before any mount", p.property)).
				WithDetail(errors.DetailProperty, p.property)
		}
		return zero, err
	}
	key := p.key
	p.mu.Unlock()

	raw, err := p.d.Get(key)
	if err != nil {
		return zero, err
	}
	v, ok := raw.(T)
	if !ok {
		name := token.Name(key)
		return zero, errors.Injection(name, fmt.Sprintf("Value for token `%s` is %T, expected %s",
			name, raw, reflect.TypeFor[T]())).WithDetail(errors.DetailProperty, p.property)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.memo[owner]; ok {
		return existing, nil
	}
	p.memo[owner] = v
	return v, nil
}

// MustGet is like Get but panics on error.
func (p *Point[T]) MustGet(owner any) T {
	v, err := p.Get(owner)
	if err != nil {
		panic(fmt.Sprintf("inject: %v", err))
	}
	return v
}

// Set stores v for owner. Later reads return v instead of the injected value.
func (p *Point[T]) Set(owner any, v T) error {
	if err := p.checkOwner(owner); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.memo[owner] = v
	return nil
}

// Release drops the value held for owner. Owners that cannot hold a value
// are ignored.
func (p *Point[T]) Release(owner any) {
	if comparableOwner(owner) != nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.memo, owner)
}

// Ready reports whether the point is bound to a registry key.
func (p *Point[T]) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// Token returns the matched registry key, or nil before resolution.
func (p *Point[T]) Token() token.Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.key
}

// Err returns the resolution error, if any.
func (p *Point[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Property returns the property name the point was declared for.
func (p *Point[T]) Property() string { return p.property }

func (p *Point[T]) checkOwner(owner any) error {
	if err := comparableOwner(owner); err != nil {
		return errors.Injection(p.property, fmt.Sprintf("Property `%s`: %v", p.property, err)).
			WithDetail(errors.DetailProperty, p.property)
	}
	return nil
}

// comparableOwner reports why owner cannot key the memo, if it cannot.
// Interface values are checked dynamically since a comparable static type
// may still hold an uncomparable value.
func comparableOwner(owner any) error {
	if owner == nil {
		return fmt.Errorf("owner is nil")
	}
	if !reflect.ValueOf(owner).Comparable() {
		return fmt.Errorf("owner of type %T is not comparable", owner)
	}
	return nil
}
