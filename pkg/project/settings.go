package project

import (
	"os"
	"path/filepath"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/tablecheck/pkg/logging"
)

// SettingsFileName is the per-project settings file, relative to the
// project directory.
const SettingsFileName = "tablecheck.yml"

// Settings are per-project defaults consumed by interactive surfaces.
// They tune how a project is opened, not how rules behave; rule
// configuration lives in templates.
type Settings struct {
	// Template is the base template id applied when opening files in
	// this project.
	Template string `koanf:"template"`
	// Overlay is merged on top of Template, when set.
	Overlay string `koanf:"overlay"`
	// HeaderRow is the zero-based header row index for this
	// project's files.
	HeaderRow int `koanf:"header_row"`
	// HistoryDepth bounds the undo/redo stacks.
	HistoryDepth int `koanf:"history_depth"`
	// PatchDir overrides where patch files are written, relative to
	// the project directory when not absolute.
	PatchDir string `koanf:"patch_dir"`
}

func defaultSettings() map[string]interface{} {
	return map[string]interface{}{
		"template":      "generic_default",
		"header_row":    0,
		"history_depth": 500,
	}
}

// LoadSettings reads the project settings file from projectDir,
// layered over built-in defaults. A missing or unreadable file yields
// the defaults; a parse failure is logged and degrades the same way.
func LoadSettings(projectDir string) Settings {
	logger := logging.GetLogger("project.settings")

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaultSettings(), "."), nil); err != nil {
		logger.Warn().Err(err).Msg("cannot load default settings")
	}

	if projectDir != "" {
		path := filepath.Join(projectDir, SettingsFileName)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("cannot parse project settings, using defaults")
			}
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		logger.Warn().Err(err).Msg("cannot decode project settings, using defaults")
		return Settings{Template: "generic_default", HistoryDepth: 500}
	}
	return s
}
