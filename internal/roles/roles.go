// Package roles loads the catalog of target role profiles.
package roles

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/skill-twin-engine/internal/schemas"
	"github.com/jonathan/skill-twin-engine/internal/types"
)

//go:embed default.yaml
var defaultDocument []byte

// ConfigError is returned for an unreadable or inconsistent role file.
type ConfigError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	msg := "roles"
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Document is the on-disk shape of a role catalog.
type Document struct {
	Roles []types.RoleProfile `json:"roles" yaml:"roles"`
}

// Catalog is an immutable, ordered set of role profiles.
type Catalog struct {
	roles  []types.RoleProfile
	byName map[string]int
}

func key(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// New validates profiles and builds a Catalog.
// Role names must be unique and a role may not list the same required skill twice.
func New(profiles []types.RoleProfile) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]int, len(profiles))}

	for _, p := range profiles {
		name := strings.Join(strings.Fields(p.Name), " ")
		if name == "" {
			return nil, &ConfigError{Message: "role with empty name"}
		}
		if _, dup := c.byName[key(name)]; dup {
			return nil, &ConfigError{Message: fmt.Sprintf("duplicate role %q", name)}
		}

		seen := make(map[string]bool, len(p.RequiredSkills))
		for _, s := range p.RequiredSkills {
			k := key(s)
			if k == "" {
				return nil, &ConfigError{Message: fmt.Sprintf("role %q has an empty required skill", name)}
			}
			if seen[k] {
				return nil, &ConfigError{Message: fmt.Sprintf("role %q lists required skill %q twice", name, s)}
			}
			seen[k] = true
		}

		p.Name = name
		p.RequiredSkills = append([]string{}, p.RequiredSkills...)
		p.EmergingSkills = append([]string(nil), p.EmergingSkills...)
		c.byName[key(name)] = len(c.roles)
		c.roles = append(c.roles, p)
	}
	return c, nil
}

// Default returns the embedded role catalog.
func Default() *Catalog {
	c, err := Parse(defaultDocument, "default.yaml")
	if err != nil {
		panic(fmt.Sprintf("embedded roles are invalid: %v", err))
	}
	return c
}

// Load reads a YAML or JSON role file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Message: "failed to read file", Cause: err}
	}
	return Parse(data, path)
}

// Parse validates data against the roles schema and builds a Catalog.
func Parse(data []byte, origin string) (*Catalog, error) {
	if err := schemas.ValidateDocument(schemas.Roles, data); err != nil {
		return nil, &ConfigError{Path: origin, Message: "schema validation failed", Cause: err}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Path: origin, Message: "failed to decode", Cause: err}
	}

	c, err := New(doc.Roles)
	if err != nil {
		if ce, ok := err.(*ConfigError); ok {
			ce.Path = origin
		}
		return nil, err
	}
	return c, nil
}

// Get looks a role up by name, ignoring case and extra whitespace.
func (c *Catalog) Get(name string) (types.RoleProfile, bool) {
	i, ok := c.byName[key(name)]
	if !ok {
		return types.RoleProfile{}, false
	}
	return clone(c.roles[i]), true
}

// Names returns role names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.roles))
	for i, r := range c.roles {
		names[i] = r.Name
	}
	return names
}

// List returns copies of all profiles in catalog order.
func (c *Catalog) List() []types.RoleProfile {
	out := make([]types.RoleProfile, len(c.roles))
	for i, r := range c.roles {
		out[i] = clone(r)
	}
	return out
}

// Len returns the number of roles.
func (c *Catalog) Len() int {
	return len(c.roles)
}

func clone(p types.RoleProfile) types.RoleProfile {
	p.RequiredSkills = append([]string{}, p.RequiredSkills...)
	p.EmergingSkills = append([]string(nil), p.EmergingSkills...)
	return p
}
