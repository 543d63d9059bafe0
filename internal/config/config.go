// Package config loads the ambient, optional TOML profile that seeds
// default FileRank weights, the token budget, and the tokenizer model. It
// is not a full settings schema: the pipeline's external collaborators
// (codemap packs, clipboard sinks) configure themselves. Structure and
// field-tagging style is grounded on the Harvx config.Profile type, pared
// down to what this pipeline's defaults section needs.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// EnvConfigPath overrides the discovery order entirely when set.
const EnvConfigPath = "LLM_CTX_CONFIG"

// EnvNoConfig disables ambient config loading entirely when set to "1".
const EnvNoConfig = "LLM_CTX_NO_CONFIG"

// Defaults is the subset of the pipeline's tunables a profile may seed.
// Zero values mean "use the pipeline's built-in default".
type Defaults struct {
	WeightPath    float64 `toml:"weight_path"`
	WeightContent float64 `toml:"weight_content"`
	WeightTFIDF   float64 `toml:"weight_tfidf"`
	WeightSize    float64 `toml:"weight_size"`
	TokenBudget   int     `toml:"token_budget"`
	TokenModel    string  `toml:"token_model"`
}

// File is the top-level shape of llmctx.toml.
type File struct {
	Defaults Defaults `toml:"defaults"`
}

// Load resolves and parses the ambient config file, per the discovery
// order: LLM_CTX_CONFIG env var, then $XDG_CONFIG_HOME/llmctx/llmctx.toml,
// then $HOME/.config/llmctx/llmctx.toml. Returns a zero File (not an
// error) when LLM_CTX_NO_CONFIG=1 or no candidate file exists.
func Load() (File, error) {
	if os.Getenv(EnvNoConfig) == "1" {
		return File{}, nil
	}

	path := resolvePath()
	if path == "" {
		return File{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, err
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, err
	}
	return f, nil
}

func resolvePath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate := filepath.Join(xdg, "llmctx", "llmctx.toml")
		if exists(candidate) {
			return candidate
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(home, ".config", "llmctx", "llmctx.toml")
	if exists(candidate) {
		return candidate
	}
	return ""
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
