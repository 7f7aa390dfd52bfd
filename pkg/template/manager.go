package template

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/tablecheck/pkg/logging"
)

// Template scopes, in ascending resolution priority.
const (
	ScopeBuiltin = "builtin"
	ScopeUser    = "user"
	ScopeProject = "project"
)

// Template types.
const (
	TypeGeneric = "generic"
	TypeOverlay = "overlay"
)

// Info describes one discovered template file.
type Info struct {
	ID       string
	Name     string
	Scope    string
	Type     string
	Path     string // empty for builtin templates
	ReadOnly bool
}

// header is the metadata block every template may carry at the top level.
type header struct {
	ID   string `yaml:"id" toml:"id"`
	Name string `yaml:"name" toml:"name"`
	Type string `yaml:"type" toml:"type"`
}

// Manager discovers templates across scopes and compiles them into
// engine configs.
type Manager struct {
	projectDir string
}

// NewManager creates a Manager. projectDir may be empty when no
// project is open; the project scope is then skipped.
func NewManager(projectDir string) *Manager {
	return &Manager{projectDir: projectDir}
}

// UserTemplatesDir returns the per-user templates directory.
func UserTemplatesDir() string {
	return filepath.Join(xdg.ConfigHome, "tablecheck", "templates")
}

// ListTemplates returns all known templates from all scopes.
// typeFilter restricts the result to "generic" or "overlay" templates;
// an empty filter returns everything.
func (m *Manager) ListTemplates(typeFilter string) []Info {
	var templates []Info
	templates = append(templates, m.discoverBuiltin()...)
	templates = append(templates, m.discoverDir(UserTemplatesDir(), ScopeUser)...)
	if m.projectDir != "" {
		templates = append(templates, m.discoverDir(filepath.Join(m.projectDir, "templates"), ScopeProject)...)
	}

	if typeFilter != "" {
		filtered := templates[:0]
		for _, t := range templates {
			if t.Type == typeFilter {
				filtered = append(filtered, t)
			}
		}
		templates = filtered
	}
	return templates
}

func (m *Manager) discoverBuiltin() []Info {
	logger := logging.GetLogger("template.manager")

	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		logger.Warn().Err(err).Msg("cannot read builtin templates")
		return nil
	}

	var results []Info
	for _, entry := range entries {
		name := entry.Name()
		raw, err := fs.ReadFile(builtinFS, "builtin/"+name)
		if err != nil {
			continue
		}
		info := infoFromRaw(raw, name, ScopeBuiltin, true)
		info.Path = ""
		results = append(results, info)
	}
	sortInfos(results)
	return results
}

func (m *Manager) discoverDir(dir, scope string) []Info {
	logger := logging.GetLogger("template.manager")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var results []Info
	for _, entry := range entries {
		if entry.IsDir() || !isTemplateFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("cannot read template")
			continue
		}
		info := infoFromRaw(raw, entry.Name(), scope, false)
		info.Path = path
		results = append(results, info)
	}
	sortInfos(results)
	return results
}

// infoFromRaw parses just the metadata header of a template. A file
// whose header cannot be parsed still lists under its stem, so a
// half-broken user template stays visible.
func infoFromRaw(raw []byte, filename, scope string, readOnly bool) Info {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))

	var h header
	if strings.HasSuffix(filename, ".toml") {
		if data, err := tomlHeader(raw); err == nil {
			h = data
		}
	} else {
		_ = yaml.Unmarshal(raw, &h)
	}

	info := Info{
		ID:       h.ID,
		Name:     h.Name,
		Scope:    scope,
		Type:     h.Type,
		ReadOnly: readOnly,
	}
	if info.ID == "" {
		info.ID = stem
	}
	if info.Name == "" {
		info.Name = info.ID
	}
	if info.Type == "" {
		info.Type = TypeGeneric
	}
	return info
}

func isTemplateFile(name string) bool {
	return strings.HasSuffix(name, ".yml") ||
		strings.HasSuffix(name, ".yaml") ||
		strings.HasSuffix(name, ".toml")
}

func sortInfos(infos []Info) {
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
}

// source locates the raw bytes and filename for a template id.
// Priority: project > user > builtin.
func (m *Manager) source(templateID string) (raw []byte, filename string, ok bool) {
	candidates := []string{templateID + ".yml", templateID + ".yaml", templateID + ".toml"}

	if m.projectDir != "" {
		for _, name := range candidates {
			path := filepath.Join(m.projectDir, "templates", name)
			if data, err := os.ReadFile(path); err == nil {
				return data, name, true
			}
		}
	}
	for _, name := range candidates {
		path := filepath.Join(UserTemplatesDir(), name)
		if data, err := os.ReadFile(path); err == nil {
			return data, name, true
		}
	}
	for _, name := range candidates {
		if data, err := fs.ReadFile(builtinFS, "builtin/"+name); err == nil {
			return data, name, true
		}
	}
	return nil, "", false
}
