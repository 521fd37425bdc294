package extract

import (
	"os"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// wavMetadata reads the RIFF fmt chunk of a WAV file
func wavMetadata(path string) *models.AssetMetadata {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil
	}

	meta := &models.AssetMetadata{
		SampleRate: u32ptr(d.SampleRate),
		Channels:   u32ptr(uint32(d.NumChans)),
		BitDepth:   u32ptr(uint32(d.BitDepth)),
	}
	if dur, err := d.Duration(); err == nil {
		meta.DurationSecs = f64ptr(dur.Seconds())
	}
	return meta
}

// mp3Metadata probes an MP3 stream. The decoder produces 16-bit stereo
// samples at 4 bytes per frame regardless of the source layout, so only
// sample rate and duration are reported.
func mp3Metadata(path string) *models.AssetMetadata {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	d, err := mp3.NewDecoder(f)
	if err != nil {
		return nil
	}

	sampleRate := d.SampleRate()
	if sampleRate <= 0 {
		return nil
	}

	meta := &models.AssetMetadata{
		SampleRate: u32ptr(uint32(sampleRate)),
	}
	if length := d.Length(); length > 0 {
		meta.DurationSecs = f64ptr(float64(length) / float64(4*sampleRate))
	}
	return meta
}

// oggMetadata probes an Ogg Vorbis stream
func oggMetadata(path string) *models.AssetMetadata {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	r, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil
	}

	sampleRate := r.SampleRate()
	if sampleRate <= 0 {
		return nil
	}

	meta := &models.AssetMetadata{
		SampleRate: u32ptr(uint32(sampleRate)),
		Channels:   u32ptr(uint32(r.Channels())),
	}
	if length := r.Length(); length > 0 {
		meta.DurationSecs = f64ptr(float64(length) / float64(sampleRate))
	}
	return meta
}
