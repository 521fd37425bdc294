package extract

import (
	"bufio"
	"encoding/binary"
	"image"
	_ "image/gif"
	"io"
	"os"

	_ "golang.org/x/image/bmp"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

var pngSignature = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// pngMetadata reads the IHDR chunk of a PNG file. Color types 4 (gray+alpha)
// and 6 (RGBA) carry an alpha channel.
func pngMetadata(path string) *models.AssetMetadata {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	br := bufio.NewReader(f)

	sig := make([]byte, 8)
	if _, err := io.ReadFull(br, sig); err != nil {
		return nil
	}
	for i, b := range pngSignature {
		if sig[i] != b {
			return nil
		}
	}

	// IHDR is required to be the first chunk: length, type, then
	// width(4) height(4) bit depth(1) color type(1).
	header := make([]byte, 8+10)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil
	}
	if string(header[4:8]) != "IHDR" {
		return nil
	}

	width := binary.BigEndian.Uint32(header[8:12])
	height := binary.BigEndian.Uint32(header[12:16])
	colorType := header[17]
	hasAlpha := colorType == 4 || colorType == 6

	return &models.AssetMetadata{
		Width:    u32ptr(width),
		Height:   u32ptr(height),
		HasAlpha: boolPtr(hasAlpha),
	}
}

// jpegMetadata walks JPEG segments until a start-of-frame marker and reads
// the frame dimensions from it. JPEG has no alpha channel.
func jpegMetadata(path string) *models.AssetMetadata {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	br := bufio.NewReader(f)

	soi := make([]byte, 2)
	if _, err := io.ReadFull(br, soi); err != nil {
		return nil
	}
	if soi[0] != 0xff || soi[1] != 0xd8 {
		return nil
	}

	for {
		markerPrefix, err := br.ReadByte()
		if err != nil {
			return nil
		}
		for markerPrefix != 0xff {
			markerPrefix, err = br.ReadByte()
			if err != nil {
				return nil
			}
		}

		marker, err := br.ReadByte()
		if err != nil {
			return nil
		}
		for marker == 0xff {
			marker, err = br.ReadByte()
			if err != nil {
				return nil
			}
		}

		if marker == 0xd9 || marker == 0xda { // EOI or SOS without a frame header
			return nil
		}
		if marker == 0x01 || (marker >= 0xd0 && marker <= 0xd7) {
			continue // standalone markers carry no length
		}

		lenBuf := make([]byte, 2)
		if _, err := io.ReadFull(br, lenBuf); err != nil {
			return nil
		}
		segLen := int(binary.BigEndian.Uint16(lenBuf))
		if segLen < 2 {
			return nil
		}

		if isSOFMarker(marker) {
			// precision(1) height(2) width(2)
			frame := make([]byte, 5)
			if _, err := io.ReadFull(br, frame); err != nil {
				return nil
			}
			height := uint32(binary.BigEndian.Uint16(frame[1:3]))
			width := uint32(binary.BigEndian.Uint16(frame[3:5]))
			return &models.AssetMetadata{
				Width:    u32ptr(width),
				Height:   u32ptr(height),
				HasAlpha: boolPtr(false),
			}
		}

		if _, err := io.CopyN(io.Discard, br, int64(segLen-2)); err != nil {
			return nil
		}
	}
}

// isSOFMarker reports whether a marker is a start-of-frame segment.
// 0xc4 (DHT), 0xc8 (JPG) and 0xcc (DAC) share the range but are not frames.
func isSOFMarker(marker byte) bool {
	if marker < 0xc0 || marker > 0xcf {
		return false
	}
	return marker != 0xc4 && marker != 0xc8 && marker != 0xcc
}

// tgaMetadata reads the fixed 18-byte TGA header. TGA has no magic
// number, so the image type and pixel depth fields are validated against
// their legal values before the dimensions are trusted.
func tgaMetadata(path string) *models.AssetMetadata {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	header := make([]byte, 18)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil
	}

	imageType := header[2]
	switch imageType {
	case 1, 2, 3, 9, 10, 11:
	default:
		return nil
	}

	depth := header[16]
	switch depth {
	case 8, 15, 16, 24, 32:
	default:
		return nil
	}

	width := uint32(binary.LittleEndian.Uint16(header[12:14]))
	height := uint32(binary.LittleEndian.Uint16(header[14:16]))
	if width == 0 || height == 0 {
		return nil
	}

	// Descriptor bits 0-3 give the alpha channel depth.
	hasAlpha := depth == 32 || header[17]&0x0f > 0

	return &models.AssetMetadata{
		Width:    u32ptr(width),
		Height:   u32ptr(height),
		HasAlpha: boolPtr(hasAlpha),
	}
}

// decodeConfigMetadata handles the secondary raster formats through the
// registered stdlib/x decoders. Alpha presence is not derivable from a
// decode config, so the field stays unset.
func decodeConfigMetadata(path string) *models.AssetMetadata {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil
	}

	return &models.AssetMetadata{
		Width:  u32ptr(uint32(cfg.Width)),
		Height: u32ptr(uint32(cfg.Height)),
	}
}
