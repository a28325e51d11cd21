package flatc

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownLanguage is returned when no code generator is registered under
// the requested name.
var ErrUnknownLanguage = errors.New("unknown target language")

// Language describes how flatc is invoked for one target language.
type Language interface {
	// Name returns the selector used on the command line and in wren.yml
	Name() string
	// Description returns a brief description for help output
	Description() string
	// Flags returns the language-specific flags placed before -o and -I
	Flags() []string
	// NestsNamespaces reports whether flatc writes output into one
	// directory per namespace segment
	NestsNamespaces() bool
}

type language struct {
	name        string
	description string
	flags       []string
	nests       bool
}

func (l language) Name() string          { return l.name }
func (l language) Description() string   { return l.description }
func (l language) Flags() []string       { return append([]string(nil), l.flags...) }
func (l language) NestsNamespaces() bool { return l.nests }

// CPP generates C++ headers.
var CPP Language = language{
	name:        "cpp",
	description: "C++ headers (*_generated.h)",
	flags:       []string{"--cpp"},
}

// CSharp generates C# sources. The file name suffix is cleared so that
// Monster.fbs becomes Monster.cs.
var CSharp Language = language{
	name:        "csharp",
	description: "C# classes, one file per type",
	flags:       []string{"--csharp", "--filename-suffix", ""},
	nests:       true,
}

// Registry holds the languages wren can compile for.
type Registry struct {
	mu        sync.RWMutex
	languages map[string]Language
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		languages: make(map[string]Language),
	}
}

// DefaultRegistry returns a registry with every built-in language.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(CPP)
	_ = r.Register(CSharp)
	return r
}

// Register adds a language to the registry
func (r *Registry) Register(lang Language) error {
	if lang == nil {
		return fmt.Errorf("cannot register nil language")
	}

	name := lang.Name()
	if name == "" {
		return fmt.Errorf("cannot register language with empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.languages[name]; exists {
		return fmt.Errorf("language '%s' is already registered", name)
	}

	r.languages[name] = lang
	return nil
}

// Lookup retrieves a language by name
func (r *Registry) Lookup(name string) (Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lang, ok := r.languages[name]
	if !ok {
		names := make([]string, 0, len(r.languages))
		for n := range r.languages {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnknownLanguage, name, strings.Join(names, ", "))
	}
	return lang, nil
}

// List returns all registered language names in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.languages))
	for name := range r.languages {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
