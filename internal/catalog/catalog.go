// Package catalog provides the read-only study-method lookup table.
package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/verte-zerg/mindely/internal/model"
)

// DefaultCustomIcon is shown for user-defined methods without an icon.
const DefaultCustomIcon = "✎"

// ErrUnknownMethod reports a lookup for an id that is not in the catalog.
var ErrUnknownMethod = errors.New("unknown study method")

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Catalog indexes built-in and user-defined methods by id.
type Catalog struct {
	methods []model.StudyMethod
	index   map[string]int
}

// Builtin returns a copy of the built-in methods.
func Builtin() []model.StudyMethod {
	out := make([]model.StudyMethod, len(builtinMethods))
	for i, m := range builtinMethods {
		out[i] = cloneMethod(m)
	}
	return out
}

// IsBuiltin reports whether id names a built-in method.
func IsBuiltin(id string) bool {
	for _, m := range builtinMethods {
		if m.ID == id {
			return true
		}
	}
	return false
}

// New builds a catalog from the built-in methods followed by custom ones.
func New(custom []model.StudyMethod) (*Catalog, error) {
	c := &Catalog{index: map[string]int{}}
	for _, m := range Builtin() {
		c.add(m)
	}
	for _, m := range custom {
		if err := ValidateMethod(m); err != nil {
			return nil, err
		}
		if _, exists := c.index[m.ID]; exists {
			return nil, fmt.Errorf("method %q is already defined", m.ID)
		}
		m = cloneMethod(m)
		m.Custom = true
		if m.Icon == "" {
			m.Icon = DefaultCustomIcon
		}
		c.add(m)
	}
	return c, nil
}

func (c *Catalog) add(m model.StudyMethod) {
	c.index[m.ID] = len(c.methods)
	c.methods = append(c.methods, m)
}

// Methods returns every method in display order.
func (c *Catalog) Methods() []model.StudyMethod {
	out := make([]model.StudyMethod, len(c.methods))
	for i, m := range c.methods {
		out[i] = cloneMethod(m)
	}
	return out
}

// Lookup returns the method with the given id.
func (c *Catalog) Lookup(id string) (model.StudyMethod, error) {
	idx, ok := c.index[strings.TrimSpace(strings.ToLower(id))]
	if !ok {
		return model.StudyMethod{}, fmt.Errorf("%w: %q", ErrUnknownMethod, id)
	}
	return cloneMethod(c.methods[idx]), nil
}

// Filter returns methods whose id, title, description or tags contain query.
func (c *Catalog) Filter(query string) []model.StudyMethod {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.Methods()
	}
	var out []model.StudyMethod
	for _, m := range c.methods {
		if matches(m, query) {
			out = append(out, cloneMethod(m))
		}
	}
	return out
}

// SessionConfig returns the timer configuration for a method id. The bool is
// false when the method has no timer.
func (c *Catalog) SessionConfig(id string) (model.SessionConfig, bool, error) {
	m, err := c.Lookup(id)
	if err != nil {
		return model.SessionConfig{}, false, err
	}
	cfg, ok := SessionConfig(m)
	return cfg, ok, nil
}

// SessionConfig converts a method's minutes into a timer configuration.
func SessionConfig(m model.StudyMethod) (model.SessionConfig, bool) {
	if !m.HasTimer {
		return model.SessionConfig{}, false
	}
	return model.SessionConfig{
		FocusSeconds:    m.FocusMinutes * 60,
		BreakSeconds:    m.BreakMinutes * 60,
		AllowModeToggle: m.ModeToggle,
		Label:           m.Title,
	}, true
}

// ValidateMethod checks a user-defined method.
func ValidateMethod(m model.StudyMethod) error {
	if !idPattern.MatchString(m.ID) {
		return fmt.Errorf("invalid method id %q (use lowercase letters, digits and dashes)", m.ID)
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("method %q: title must not be empty", m.ID)
	}
	if m.HasTimer {
		if m.FocusMinutes <= 0 {
			return fmt.Errorf("method %q: focus minutes must be > 0", m.ID)
		}
		if m.BreakMinutes <= 0 {
			return fmt.Errorf("method %q: break minutes must be > 0", m.ID)
		}
	}
	return nil
}

func matches(m model.StudyMethod, query string) bool {
	fields := []string{m.ID, m.Title, m.Description}
	fields = append(fields, m.BestFor...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func cloneMethod(m model.StudyMethod) model.StudyMethod {
	m.HowItWorks = append([]string(nil), m.HowItWorks...)
	m.BestFor = append([]string(nil), m.BestFor...)
	return m
}
