package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config carries the paths of one run.
type Config struct {
	Input  string `koanf:"input"`
	Output string `koanf:"output"`
}

type jsonParser struct{}

func (jsonParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (jsonParser) Marshal(m map[string]interface{}) ([]byte, error) { return json.Marshal(m) }

// parserFor picks the config decoder from the file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlParser{}, nil
	case ".toml":
		return tomlParser{}, nil
	case ".json":
		return jsonParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .yaml, .yml, .toml or .json)", filepath.Ext(path))
	}
}

// pathKeys are the flags that map onto Config keys.
var pathKeys = map[string]bool{"input": true, "output": true}

// loadConfig merges the optional config file and the path flags. Flags set on
// the command line win over the file; flag defaults only fill keys the file
// left unset.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")
	if cfgFile != "" {
		parser, err := parserFor(cfgFile)
		if err != nil {
			return Config{}, err
		}
		if err := k.Load(file.Provider(cfgFile), parser); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", cfgFile, err)
		}
	}
	if flags != nil {
		err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !pathKeys[f.Name] {
				return "", nil
			}
			return f.Name, posflag.FlagVal(flags, f)
		}), nil)
		if err != nil {
			return Config{}, fmt.Errorf("load flags: %w", err)
		}
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
