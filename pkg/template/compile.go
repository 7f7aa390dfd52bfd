package template

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/tablecheck/pkg/config"
	"github.com/arthur-debert/tablecheck/pkg/errors"
	"github.com/arthur-debert/tablecheck/pkg/logging"
	"github.com/arthur-debert/tablecheck/pkg/vocab"
)

// systemDefaults is the always-present bottom layer of every compiled
// config. Templates override it like any other layer.
func systemDefaults() map[string]interface{} {
	return map[string]interface{}{
		"columns": map[string]interface{}{
			config.Wildcard: map[string]interface{}{
				"kind":           string("free_text_short"),
				"list_separator": "|",
			},
		},
	}
}

// CompileOptions tune CompileConfig.
type CompileOptions struct {
	// OverlayID names an overlay template merged on top of the base.
	OverlayID string
	// Columns are the actual column names of the loaded dataset. When
	// set, wildcard and group entries are resolved into one flat
	// entry per column.
	Columns []string
	// Vocabulary, when set, is injected into the compiled config for
	// vocabulary-dependent rules to consume.
	Vocabulary vocab.Provider
	// KnownRules lists registered rule ids; configured ids outside
	// this set are reported as warnings. A nil slice skips the check.
	KnownRules []string
}

// CompileConfig loads, merges, and resolves a template into an
// engine-ready Config.
//
// Configuration trouble is never fatal: a missing base or overlay
// template, a parse failure, and an unknown rule id all degrade to
// warnings, falling back to whatever layers did load (at worst the
// system defaults).
func (m *Manager) CompileConfig(genericID string, opts CompileOptions) *config.Config {
	logger := logging.GetLogger("template.compile")

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(systemDefaults(), "."), nil); err != nil {
		logger.Warn().Err(err).Msg("cannot load system defaults")
	}

	if raw, filename, ok := m.source(genericID); ok {
		if err := loadInto(k, raw, filename); err != nil {
			logger.Warn().Err(err).Str("template", genericID).Msg("cannot parse template, ignoring")
		}
	} else {
		logger.Warn().Str("template", genericID).Msg("template not found, using empty config")
	}

	if opts.OverlayID != "" {
		if raw, filename, ok := m.source(opts.OverlayID); ok {
			if err := loadInto(k, raw, filename); err != nil {
				logger.Warn().Err(err).Str("template", opts.OverlayID).Msg("cannot parse overlay, ignoring")
			}
		} else {
			logger.Warn().Str("template", opts.OverlayID).Msg("overlay not found, ignoring")
		}
	}

	cfg, err := decode(k)
	if err != nil {
		logger.Warn().Err(err).Str("template", genericID).Msg("cannot decode template, using empty config")
		cfg = config.Empty()
	}

	if opts.KnownRules != nil {
		warnUnknownRules(cfg, opts.KnownRules)
	}

	if opts.Columns != nil {
		cfg = cfg.ResolveColumns(opts.Columns)
	}

	if opts.Vocabulary != nil {
		cfg.SetVocabulary(opts.Vocabulary)
	}

	return cfg
}

// warnUnknownRules logs configured rule ids that no registered rule
// answers to. Typos in hand-edited templates surface here and nowhere
// else; the rule entry is simply inert.
func warnUnknownRules(cfg *config.Config, known []string) {
	logger := logging.GetLogger("template.compile")

	knownSet := make(map[string]struct{}, len(known))
	for _, id := range known {
		knownSet[id] = struct{}{}
	}
	for id := range cfg.Rules {
		if _, ok := knownSet[id]; !ok {
			logger.Warn().Str("rule", id).Msg("template references unknown rule")
		}
	}
}

// SaveTemplate writes a template document into the user scope. The
// document is whatever an editing surface holds: the metadata header
// keys plus rules/columns/column_groups sections.
func (m *Manager) SaveTemplate(doc map[string]interface{}) error {
	id, _ := doc["id"].(string)
	if id == "" {
		return errors.New(errors.ErrInvalidInput, "template document needs an id")
	}

	dir := UserTemplatesDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot create %s", dir)
	}

	raw, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrTemplateParse, "cannot marshal template")
	}

	path := filepath.Join(dir, id+".yml")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot write %s", path)
	}
	return nil
}
