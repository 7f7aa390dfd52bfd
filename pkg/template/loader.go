package template

import (
	"errors"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/tablecheck/pkg/config"
	tcerrors "github.com/arthur-debert/tablecheck/pkg/errors"
)

// rawBytesProvider feeds already-read template bytes into koanf.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// parserFor picks the koanf parser matching the template file name.
func parserFor(filename string) koanf.Parser {
	if strings.HasSuffix(filename, ".toml") {
		return ktoml.Parser()
	}
	return kyaml.Parser()
}

// tomlHeader extracts the metadata header from a TOML template.
func tomlHeader(raw []byte) (header, error) {
	data, err := ktoml.Parser().Unmarshal(raw)
	if err != nil {
		return header{}, err
	}
	var h header
	if v, ok := data["id"].(string); ok {
		h.ID = v
	}
	if v, ok := data["name"].(string); ok {
		h.Name = v
	}
	if v, ok := data["type"].(string); ok {
		h.Type = v
	}
	return h, nil
}

// loadInto loads template bytes into the koanf instance. Loading a
// second template into the same instance deep-merges it: nested maps
// merge key-by-key, scalars and lists are replaced wholesale.
func loadInto(k *koanf.Koanf, raw []byte, filename string) error {
	if err := k.Load(&rawBytesProvider{bytes: raw}, parserFor(filename)); err != nil {
		return tcerrors.Wrapf(err, tcerrors.ErrTemplateParse, "cannot parse template %s", filename)
	}
	return nil
}

// decode unmarshals the merged koanf tree into a typed Config.
func decode(k *koanf.Koanf) (*config.Config, error) {
	cfg := config.Empty()
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			Squash:           true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		return nil, tcerrors.Wrap(err, tcerrors.ErrConfigInvalid, "cannot decode template")
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleSettings)
	}
	if cfg.Columns == nil {
		cfg.Columns = make(map[string]config.ColumnSettings)
	}
	return cfg, nil
}
