package runtime

import (
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/wippyai/xlsx-bridge/errors"
)

// Host is implemented by values whose exported methods are call targets.
type Host interface {
	// Namespace names the library the targets belong to.
	Namespace() string
}

// ExplicitRegistrar lets a host list its targets by name instead of having
// every exported method registered.
type ExplicitRegistrar interface {
	Register() map[string]any
}

// Target is one resolvable call target.
type Target struct {
	Name string
	Fn   reflect.Value
}

// Library is a table of named call targets, resolved into typed function
// variables once when the library is opened.
type Library struct {
	namespace string
	targets   map[string]*Target
	mu        sync.RWMutex
}

func NewLibrary() *Library {
	return &Library{targets: make(map[string]*Target)}
}

// Namespace returns the namespace of the first registered host.
func (l *Library) Namespace() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.namespace
}

// RegisterHost registers the exported methods of h under their kebab-case
// names, e.g. PackageSaveAs becomes "package-save-as".
func (l *Library) RegisterHost(h Host) error {
	ns := h.Namespace()
	if ns == "" {
		return errors.InvalidInput(errors.PhaseHost, "namespace cannot be empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.namespace == "" {
		l.namespace = ns
	} else if l.namespace != ns {
		return errors.InvalidInput(errors.PhaseHost, "host namespace "+ns+" does not match "+l.namespace)
	}

	if er, ok := h.(ExplicitRegistrar); ok {
		for name, fn := range er.Register() {
			if err := l.addLocked(name, fn); err != nil {
				return err
			}
		}
		return nil
	}

	rv := reflect.ValueOf(h)
	rt := rv.Type()
	for i := 0; i < rt.NumMethod(); i++ {
		method := rt.Method(i)
		if !method.IsExported() || method.Name == "Namespace" {
			continue
		}
		name := toKebabCase(method.Name)
		l.targets[name] = &Target{Name: name, Fn: rv.Method(i)}
	}
	return nil
}

// RegisterFunc registers a single function under name.
func (l *Library) RegisterFunc(name string, fn any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.addLocked(name, fn)
}

func (l *Library) addLocked(name string, fn any) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseHost, "function name cannot be empty")
	}
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return errors.New(errors.PhaseHost, errors.KindTypeMismatch).
			Path(name).
			GoType(reflect.TypeOf(fn).String()).
			Detail("target must be a function").
			Build()
	}
	l.targets[name] = &Target{Name: name, Fn: rv}
	return nil
}

// Resolve stores the target registered as name into the function variable
// ptr points to. The target's signature must be assignable to the variable.
func (l *Library) Resolve(name string, ptr any) error {
	pv := reflect.ValueOf(ptr)
	if pv.Kind() != reflect.Pointer || pv.IsNil() || pv.Elem().Kind() != reflect.Func {
		return errors.New(errors.PhaseHost, errors.KindTypeMismatch).
			Path(name).
			GoType(reflect.TypeOf(ptr).String()).
			Detail("resolve needs a pointer to a function variable").
			Build()
	}

	l.mu.RLock()
	t, ok := l.targets[name]
	l.mu.RUnlock()
	if !ok {
		return errors.NotFound(errors.PhaseHost, "entry point", name)
	}

	want := pv.Elem().Type()
	if !t.Fn.Type().AssignableTo(want) {
		return errors.New(errors.PhaseHost, errors.KindTypeMismatch).
			Path(name).
			GoType(t.Fn.Type().String()).
			Detail("cannot assign to %s", want).
			Build()
	}
	pv.Elem().Set(t.Fn)
	return nil
}

// Binding pairs an entry point name with the variable it resolves into.
type Binding struct {
	Name string
	Ptr  any
}

// ResolveAll resolves every binding and reports the first failure.
func (l *Library) ResolveAll(bindings []Binding) error {
	for _, b := range bindings {
		if err := l.Resolve(b.Name, b.Ptr); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the registered target names in sorted order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.targets))
	for name := range l.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// toKebabCase converts PascalCase to kebab-case.
// Handles acronyms: GetHTTPURL -> get-http-url
func toKebabCase(s string) string {
	if len(s) == 0 {
		return ""
	}

	runes := []rune(s)
	var result strings.Builder

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if !unicode.IsUpper(r) {
			result.WriteRune(r)
			continue
		}

		end := i + 1
		for end < len(runes) && unicode.IsUpper(runes[end]) {
			end++
		}
		// the last capital of a run starts the next word
		if end > i+1 && end < len(runes) && unicode.IsLower(runes[end]) {
			end--
		}

		if i > 0 {
			result.WriteByte('-')
		}
		for j := i; j < end; j++ {
			result.WriteRune(unicode.ToLower(runes[j]))
		}
		i = end - 1
	}
	return result.String()
}
