package analyzer

import (
	"fmt"
	"strings"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// AudioRule checks sample rates, clip length, and on-disk size. The rule
// abstains entirely for clips with no extracted metadata; duration and
// channel checks only apply to clips that look like sound effects.
type AudioRule struct {
	BaseRule
	config AudioConfig
}

// NewAudioRule creates the audio rule with the given limits
func NewAudioRule(cfg AudioConfig) *AudioRule {
	return &AudioRule{
		BaseRule: NewBaseRule("audio", "Audio Specification"),
		config:   cfg,
	}
}

// AppliesTo reports true for audio assets
func (r *AudioRule) AppliesTo(asset *models.AssetInfo) bool {
	return asset.Type == models.TypeAudio
}

// Check returns the first audio violation for the asset, if any
func (r *AudioRule) Check(asset *models.AssetInfo) *models.Issue {
	md := asset.Metadata
	if md == nil {
		return nil
	}

	if md.SampleRate != nil && !r.sampleRateAllowed(*md.SampleRate) {
		return &models.Issue{
			RuleID:     "audio.sample_rate",
			RuleName:   "Unusual Sample Rate",
			Severity:   models.SeverityInfo,
			Message:    fmt.Sprintf("Sample rate is %d Hz, expected one of %v", *md.SampleRate, r.config.AllowedSampleRates),
			AssetPath:  asset.Path,
			Suggestion: "Resample to a standard rate",
		}
	}

	sfx := isLikelySFX(asset.Name)

	if sfx && md.DurationSecs != nil && *md.DurationSecs > r.config.MaxSFXDuration {
		return &models.Issue{
			RuleID:     "audio.sfx_duration",
			RuleName:   "Sound Effect Too Long",
			Severity:   models.SeverityWarning,
			Message:    fmt.Sprintf("Sound effect is %.1fs, max expected is %.1fs", *md.DurationSecs, r.config.MaxSFXDuration),
			AssetPath:  asset.Path,
			Suggestion: "Trim the clip or treat it as music/ambience",
		}
	}

	if sfx && r.config.PreferMonoForSFX && md.Channels != nil && *md.Channels > 1 {
		return &models.Issue{
			RuleID:     "audio.stereo_sfx",
			RuleName:   "Stereo Sound Effect",
			Severity:   models.SeverityInfo,
			Message:    fmt.Sprintf("Sound effect has %d channels, mono is preferred", *md.Channels),
			AssetPath:  asset.Path,
			Suggestion: "Downmix sound effects to mono",
		}
	}

	if asset.Size > r.config.MaxFileSize {
		return &models.Issue{
			RuleID:     "audio.file_size",
			RuleName:   "Audio File Too Large",
			Severity:   models.SeverityWarning,
			Message:    fmt.Sprintf("Audio file is %.1f MB, max allowed is %.1f MB", float64(asset.Size)/1048576.0, float64(r.config.MaxFileSize)/1048576.0),
			AssetPath:  asset.Path,
			Suggestion: "Use a compressed format such as OGG",
		}
	}

	return nil
}

func (r *AudioRule) sampleRateAllowed(rate uint32) bool {
	for _, allowed := range r.config.AllowedSampleRates {
		if rate == allowed {
			return true
		}
	}
	return false
}

// isLikelySFX guesses from the file name whether a clip is a sound effect
func isLikelySFX(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range []string{"sfx", "effect", "click", "hit", "jump", "pickup", "explosion", "footstep"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
