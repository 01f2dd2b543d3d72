package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

type codec struct {
	decode       func(io.Reader) (image.Image, error)
	decodeConfig func(io.Reader) (image.Config, error)
}

// Codecs are picked by extension. TGA has no magic number, so sniffing
// through image.Decode is not reliable once it is registered.
var codecs = map[string]codec{
	".png":  {png.Decode, png.DecodeConfig},
	".jpg":  {jpeg.Decode, jpeg.DecodeConfig},
	".jpeg": {jpeg.Decode, jpeg.DecodeConfig},
	".gif":  {gif.Decode, gif.DecodeConfig},
	".bmp":  {bmp.Decode, bmp.DecodeConfig},
	".webp": {webp.Decode, webp.DecodeConfig},
	".tga":  {tga.Decode, tga.DecodeConfig},
}

// Supported reports whether path has an extension LoadImage can decode.
func Supported(path string) bool {
	_, ok := codecs[strings.ToLower(filepath.Ext(path))]
	return ok
}

func codecFor(path string) (codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	c, ok := codecs[ext]
	if !ok {
		return codec{}, fmt.Errorf("texture: unknown extension %q: %s", ext, path)
	}
	return c, nil
}

// LoadImage reads a sprite image and returns it as NRGBA.
func LoadImage(path string) (*image.NRGBA, error) {
	c, err := codecFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := c.decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

// Probe returns the dimensions and color model of an image without decoding
// its pixels.
func Probe(path string) (image.Config, error) {
	c, err := codecFor(path)
	if err != nil {
		return image.Config{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := c.decodeConfig(f)
	if err != nil {
		return image.Config{}, fmt.Errorf("texture: probe %s: %w", path, err)
	}
	return cfg, nil
}

// toNRGBA converts any image to NRGBA with its origin at (0,0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// Opaque sources: a plain copy is exact.
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
