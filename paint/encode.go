package paint

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/disintegration/imaging"
)

// Format is a raster output format.
type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
)

// PixelsPerInch is the resolution of a CSS pixel, written into JPEG density
// fields.
const PixelsPerInch = 96

type densityUnits uint8

const (
	densityNoUnits densityUnits = iota
	densityPxPerInch
	densityPxPerCm
)

// Encode writes image to w in requested format. Quality is only used for
// JPEG. Opaque images without color are encoded with single gray channel.
func Encode(w io.Writer, img image.Image, format Format, quality int) error {
	if isGrayscale(img) {
		img = toGray(img)
	}

	switch format {
	case FormatPNG:
		return imaging.Encode(w, img, imaging.PNG)
	case FormatJPEG:
		buf := new(bytes.Buffer)
		if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return err
		}
		data, _, err := ensureJFIF(buf.Bytes(), densityPxPerInch, PixelsPerInch, PixelsPerInch)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported image format %d", format)
	}
}

// ensureJFIF inserts JFIF APP0 marker segment with pixel density if it is
// missing. Go JPEG encoder never writes one.
func ensureJFIF(data []byte, units densityUnits, xdensity, ydensity uint16) ([]byte, bool, error) {
	if len(data) < 4 {
		return nil, false, errors.New("jpeg too small")
	}
	// SOI
	if data[0] != 0xFF || data[1] != 0xD8 {
		return nil, false, errors.New("not a jpeg")
	}
	// APP0 already present
	if data[2] == 0xFF && data[3] == 0xE0 {
		return data, false, nil
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(data)+18))
	buf.Write(data[:2])
	buf.Write([]byte{0xFF, 0xE0})
	_ = binary.Write(buf, binary.BigEndian, uint16(0x10))
	buf.Write([]byte{'J', 'F', 'I', 'F', 0x00, 0x01, 0x02})
	buf.WriteByte(byte(units))
	_ = binary.Write(buf, binary.BigEndian, xdensity)
	_ = binary.Write(buf, binary.BigEndian, ydensity)
	// no thumbnail
	buf.Write([]byte{0x00, 0x00})
	buf.Write(data[2:])
	return buf.Bytes(), true, nil
}

// isGrayscale reports whether img is opaque and all its pixels have R==G==B.
func isGrayscale(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	if o, ok := img.(interface{ Opaque() bool }); !ok || !o.Opaque() {
		return false
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R != c.G || c.G != c.B {
				return false
			}
		}
	}
	return true
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)
	return gray
}
