package inject

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/kbukum/dime/di"
	"github.com/kbukum/dime/errors"
	"github.com/kbukum/dime/token"
)

// TagName is the struct tag read by Into.
const TagName = "dime"

// tagOptions represents parsed options from a dime tag.
type tagOptions struct {
	skip     bool
	optional bool
	name     string
}

// parseTag parses a dime struct tag. Supported formats:
//   - `dime:""` uses the field name as the token
//   - `dime:"Name"` uses Name as the token
//   - `dime:",optional"` leaves the field untouched on a miss
//   - `dime:"-"` skips the field
func parseTag(tag string) tagOptions {
	if tag == "-" {
		return tagOptions{skip: true}
	}
	parts := strings.Split(tag, ",")
	opts := tagOptions{name: strings.TrimSpace(parts[0])}
	for _, part := range parts[1:] {
		if strings.TrimSpace(part) == "optional" {
			opts.optional = true
		}
	}
	return opts
}

type fieldInfo struct {
	index    int
	name     string
	typ      reflect.Type
	explicit bool
	opts     tagOptions
}

var fieldCache sync.Map // reflect.Type -> []fieldInfo

// injectableFields returns the tagged fields of a struct type, computing
// them once per type.
func injectableFields(typ reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(typ); ok {
		return cached.([]fieldInfo)
	}

	fields := make([]fieldInfo, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup(TagName)
		if !ok {
			continue
		}
		opts := parseTag(tag)
		if opts.skip {
			continue
		}
		info := fieldInfo{index: i, name: f.Name, typ: f.Type, explicit: opts.name != "", opts: opts}
		if !info.explicit {
			info.opts.name = f.Name
		}
		fields = append(fields, info)
	}

	actual, _ := fieldCache.LoadOrStore(typ, fields)
	return actual.([]fieldInfo)
}

// Into resolves every dime-tagged field of the struct target points to.
// Unlike Declare it resolves immediately, so d must already be mounted.
//
//	type Signup struct {
//	    Mailer *Mailer `dime:""`
//	    Clock  Clock   `dime:"SystemClock,optional"`
//	}
//
//	s := &Signup{}
//	err := inject.Into(d, s)
func Into(d *di.Dime, target any) error {
	if target == nil {
		return fmt.Errorf("inject: cannot inject into nil")
	}
	value := reflect.ValueOf(target)
	if value.Kind() != reflect.Ptr || value.IsNil() || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("inject: Into requires a non-nil pointer to struct, got %T", target)
	}
	elem := value.Elem()

	for _, f := range injectableFields(elem.Type()) {
		if err := injectField(d, elem.Field(f.index), f); err != nil {
			return err
		}
	}
	return nil
}

func injectField(d *di.Dime, fv reflect.Value, f fieldInfo) error {
	if !fv.CanSet() {
		return errors.Injection(f.opts.name, fmt.Sprintf("Field `%s` is not settable (not exported?)", f.name)).
			WithDetail(errors.DetailProperty, f.name)
	}

	tok := token.String(f.opts.name)
	key, ok := d.GetValidToken(tok)
	if !ok {
		if f.opts.optional {
			return nil
		}
		return fieldMissError(f)
	}

	raw, err := d.Get(key)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(raw)
	if !rv.IsValid() || !rv.Type().AssignableTo(f.typ) {
		name := token.Name(key)
		return errors.Injection(name, fmt.Sprintf("Value for token `%s` is %T, not assignable to field `%s` of type %s",
			name, raw, f.name, f.typ)).WithDetail(errors.DetailProperty, f.name)
	}
	fv.Set(rv)
	return nil
}

func fieldMissError(f fieldInfo) error {
	name := f.opts.name
	if f.explicit {
		return errors.Injection(name, fmt.Sprintf(
			"Cannot find injectable value for token `%s`! Did you forget to include `%s` in a package?",
			name, name)).WithDetail(errors.DetailProperty, f.name)
	}
	return errors.Injection(name, fmt.Sprintf(
		"Cannot find injection token for key `%[1]s`!\n\nPossible causes:\n"+
			" - You forgot to name a token in the dime tag\n"+
			" - You forgot to include `%[1]s` in a package\n"+
			" - You misspelled the field name `%[1]s`\n",
		name)).WithDetail(errors.DetailProperty, f.name)
}
