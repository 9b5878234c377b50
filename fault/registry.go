package fault

import (
	"sort"
	"sync"

	"github.com/wippyai/xlsx-bridge/errors"
)

// Rule describes how one class is rebuilt on the host.
type Rule struct {
	// Class is the exact wire name.
	Class string
	// New returns a zero value of the class, ready to receive its fields.
	New func() Fault
}

// Classifier maps a foreign error onto a class. It returns false when it
// does not recognize err.
type Classifier func(err error) (Fault, bool)

// Registry is the closed table of classes both sides agree on, plus the
// classifiers used when capturing errors that are not faults yet.
type Registry struct {
	rules       map[string]Rule
	classifiers []Classifier
	mu          sync.RWMutex
}

// NewRegistry creates a registry holding every built-in class.
func NewRegistry() *Registry {
	r := &Registry{rules: make(map[string]Rule)}
	for _, rule := range builtin() {
		r.rules[rule.Class] = rule
	}
	return r
}

func ruleFor[T any, PT interface {
	*T
	Fault
}](class string) Rule {
	return Rule{Class: class, New: func() Fault { return PT(new(T)) }}
}

func builtin() []Rule {
	return []Rule{
		ruleFor[Exception](ClassException),
		ruleFor[ArgumentError](ClassArgument),
		ruleFor[ArgumentNullError](ClassArgumentNull),
		ruleFor[ArgumentOutOfRangeError](ClassArgumentOutOfRange),
		ruleFor[InvalidOperationError](ClassInvalidOperation),
		ruleFor[NotSupportedError](ClassNotSupported),
		ruleFor[NotImplementedError](ClassNotImplemented),
		ruleFor[NullReferenceError](ClassNullReference),
		ruleFor[InvalidCastError](ClassInvalidCast),
		ruleFor[ObjectDisposedError](ClassObjectDisposed),
		ruleFor[IndexOutOfRangeError](ClassIndexOutOfRange),
		ruleFor[KeyNotFoundError](ClassKeyNotFound),
		ruleFor[FormatError](ClassFormat),
		ruleFor[IOError](ClassIO),
		ruleFor[OverflowError](ClassOverflow),
		ruleFor[OutOfMemoryError](ClassOutOfMemory),
		ruleFor[TimeoutError](ClassTimeout),
		ruleFor[RuntimeError](ClassRuntime),
		ruleFor[AggregateError](ClassAggregate),
	}
}

// Register adds a class. Registering an existing class name fails.
func (r *Registry) Register(rule Rule) error {
	if rule.Class == "" || rule.New == nil {
		return errors.InvalidInput(errors.PhaseHost, "rule needs a class name and a constructor")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[rule.Class]; exists {
		return errors.New(errors.PhaseHost, errors.KindRegistration).
			Class(rule.Class).
			Detail("class already registered").
			Build()
	}
	r.rules[rule.Class] = rule
	return nil
}

// AddClassifier appends a classifier consulted by Classify, in order.
func (r *Registry) AddClassifier(c Classifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classifiers = append(r.classifiers, c)
}

// Lookup returns the rule for an exact class name.
func (r *Registry) Lookup(class string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[class]
	return rule, ok
}

// Classes returns the registered class names in sorted order.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.rules))
	for name := range r.rules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) classify(err error) (Fault, bool) {
	r.mu.RLock()
	cs := r.classifiers
	r.mu.RUnlock()
	for _, c := range cs {
		if f, ok := c(err); ok {
			return f, true
		}
	}
	return nil, false
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry shared by both sides.
func Default() *Registry {
	return defaultRegistry
}

// New creates a fault of an exact registered class with message and the
// caller's stack. It reports false for an unregistered class.
func (r *Registry) New(class, message string) (Fault, bool) {
	rule, ok := r.Lookup(class)
	if !ok {
		return nil, false
	}
	f := rule.New()
	b := f.Base()
	b.message = message
	b.stackTrace = stack(1)
	return f, true
}
