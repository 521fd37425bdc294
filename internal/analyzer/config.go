package analyzer

import (
	"os"

	"gopkg.in/yaml.v3"
)

// RuleConfig holds one configuration record per rule family. Families are
// independently enable-able and every field has an explicit default, so a
// partial document overlays the defaults.
type RuleConfig struct {
	Naming  NamingConfig  `yaml:"naming"`
	Texture TextureConfig `yaml:"texture"`
	Model   ModelConfig   `yaml:"model"`
	Audio   AudioConfig   `yaml:"audio"`
}

// NamingConfig tunes the file-naming rule family
type NamingConfig struct {
	Enabled        bool     `yaml:"enabled"`
	ForbiddenChars []string `yaml:"forbidden_chars"`
	ForbidChinese  bool     `yaml:"forbid_chinese"`
	MaxLength      int      `yaml:"max_length"`
	TexturePrefix  string   `yaml:"texture_prefix"`
	ModelPrefix    string   `yaml:"model_prefix"`
	AudioPrefix    string   `yaml:"audio_prefix"`
	CaseStyle      string   `yaml:"case_style"` // PascalCase, snake_case, camelCase, any
}

// TextureConfig tunes the texture rule family
type TextureConfig struct {
	Enabled       bool   `yaml:"enabled"`
	RequirePOT    bool   `yaml:"require_pot"`
	MaxSize       uint32 `yaml:"max_size"`
	MinSize       uint32 `yaml:"min_size"`
	WarnNonSquare bool   `yaml:"warn_non_square"`
	MaxFileSize   int64  `yaml:"max_file_size"`
}

// ModelConfig tunes the model rule family
type ModelConfig struct {
	Enabled      bool   `yaml:"enabled"`
	MaxVertices  uint32 `yaml:"max_vertices"`
	MaxFaces     uint32 `yaml:"max_faces"`
	MaxMaterials uint32 `yaml:"max_materials"`
}

// AudioConfig tunes the audio rule family
type AudioConfig struct {
	Enabled            bool     `yaml:"enabled"`
	AllowedSampleRates []uint32 `yaml:"allowed_sample_rates"`
	MaxSFXDuration     float64  `yaml:"max_sfx_duration"`
	MaxFileSize        int64    `yaml:"max_file_size"`
	PreferMonoForSFX   bool     `yaml:"prefer_mono_for_sfx"`
}

// DefaultRuleConfig returns the configuration every scan starts from
func DefaultRuleConfig() *RuleConfig {
	return &RuleConfig{
		Naming: NamingConfig{
			Enabled:        true,
			ForbiddenChars: []string{" ", "!", "@", "#", "$", "%", "^", "&", "*", "(", ")", "+", "="},
			ForbidChinese:  true,
			MaxLength:      64,
			TexturePrefix:  "T_",
			CaseStyle:      "any",
		},
		Texture: TextureConfig{
			Enabled:     true,
			RequirePOT:  false,
			MaxSize:     4096,
			MinSize:     4,
			MaxFileSize: 10 * 1024 * 1024,
		},
		Model: ModelConfig{
			Enabled:      true,
			MaxVertices:  100_000,
			MaxFaces:     100_000,
			MaxMaterials: 10,
		},
		Audio: AudioConfig{
			Enabled:            true,
			AllowedSampleRates: []uint32{44100, 48000},
			MaxSFXDuration:     30.0,
			MaxFileSize:        20 * 1024 * 1024,
		},
	}
}

// ParseRuleConfig overlays a YAML document onto the defaults
func ParseRuleConfig(data []byte) (*RuleConfig, error) {
	cfg := DefaultRuleConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadRuleConfig reads and parses a YAML rule configuration file
func LoadRuleConfig(path string) (*RuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRuleConfig(data)
}

// YAML serializes the configuration for human editing
func (c *RuleConfig) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
