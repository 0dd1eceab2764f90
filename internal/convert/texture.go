package convert

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"

	"planetview/internal/utils"
)

// Packed texture container (.ptex), little endian:
//
//	magic    [8]byte "PTEX0001"
//	format   uint32  FormatRGBA8, FormatDXT1 or FormatDXT5
//	width    uint32
//	height   uint32
//	flags    uint32  FlagLZ4
//	rawSize  uint32  payload size after decompression
//	dataSize uint32  bytes that follow
//	data     [dataSize]byte

const PackedMagic = "PTEX0001"

const (
	FormatRGBA8 uint32 = iota
	FormatDXT1
	FormatDXT5
)

const FlagLZ4 uint32 = 1

// maxDimension bounds header sizes before any allocation happens.
const maxDimension = 16384

type packedHeader struct {
	Format   uint32
	Width    uint32
	Height   uint32
	Flags    uint32
	RawSize  uint32
	DataSize uint32
}

func formatName(format uint32) string {
	switch format {
	case FormatRGBA8:
		return "RGBA8"
	case FormatDXT1:
		return "DXT1"
	case FormatDXT5:
		return "DXT5"
	}
	return fmt.Sprintf("format(%d)", format)
}

func expectedSize(format, w, h uint32) (uint32, error) {
	blocks := ((w + 3) / 4) * ((h + 3) / 4)
	switch format {
	case FormatRGBA8:
		return w * h * 4, nil
	case FormatDXT1:
		return blocks * 8, nil
	case FormatDXT5:
		return blocks * 16, nil
	}
	return 0, fmt.Errorf("unsupported texture format %d", format)
}

// DecodePacked reads one .ptex image.
func DecodePacked(r io.Reader) (*image.RGBA, error) {
	magic := make([]byte, len(PackedMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if string(magic) != PackedMagic {
		return nil, fmt.Errorf("invalid magic: %q", magic)
	}

	var hdr packedHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if hdr.Width == 0 || hdr.Height == 0 || hdr.Width > maxDimension || hdr.Height > maxDimension {
		return nil, fmt.Errorf("invalid dimensions %dx%d", hdr.Width, hdr.Height)
	}
	want, err := expectedSize(hdr.Format, hdr.Width, hdr.Height)
	if err != nil {
		return nil, err
	}

	utils.Debug("    Format: %s, Size: %dx%d, LZ4: %v", formatName(hdr.Format), hdr.Width, hdr.Height, hdr.Flags&FlagLZ4 != 0)

	if hdr.DataSize > want*2+1024 {
		return nil, fmt.Errorf("payload of %d bytes too large for %dx%d %s", hdr.DataSize, hdr.Width, hdr.Height, formatName(hdr.Format))
	}
	data := make([]byte, hdr.DataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	if hdr.Flags&FlagLZ4 != 0 {
		if hdr.RawSize != want {
			return nil, fmt.Errorf("lz4 raw size %d, want %d", hdr.RawSize, want)
		}
		utils.Debug("    Decompressing LZ4: %d -> %d", hdr.DataSize, hdr.RawSize)
		decoded := make([]byte, hdr.RawSize)
		n, err := lz4.UncompressBlock(data, decoded)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		data = decoded[:n]
	}

	if uint32(len(data)) != want {
		return nil, fmt.Errorf("%s payload is %d bytes, want %d", formatName(hdr.Format), len(data), want)
	}

	var pix []byte
	switch hdr.Format {
	case FormatRGBA8:
		pix = data
	case FormatDXT1:
		pix, err = dxt.DecodeDXT1(data, uint(hdr.Width), uint(hdr.Height))
	case FormatDXT5:
		pix, err = dxt.DecodeDXT5(data, uint(hdr.Width), uint(hdr.Height))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", formatName(hdr.Format), err)
	}
	if len(pix) < int(hdr.Width*hdr.Height*4) {
		return nil, fmt.Errorf("%s decoder returned %d bytes", formatName(hdr.Format), len(pix))
	}

	return &image.RGBA{
		Pix:    pix[:hdr.Width*hdr.Height*4],
		Stride: int(hdr.Width * 4),
		Rect:   image.Rect(0, 0, int(hdr.Width), int(hdr.Height)),
	}, nil
}

// EncodePacked writes img as an RGBA8 .ptex, lz4-compressed when that helps.
func EncodePacked(w io.Writer, img image.Image, compress bool) error {
	rgba := ToRGBA(img)
	b := rgba.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 || b.Dx() > maxDimension || b.Dy() > maxDimension {
		return fmt.Errorf("cannot pack %dx%d image", b.Dx(), b.Dy())
	}

	raw := rgba.Pix
	hdr := packedHeader{
		Format:  FormatRGBA8,
		Width:   uint32(b.Dx()),
		Height:  uint32(b.Dy()),
		RawSize: uint32(len(raw)),
	}

	payload := raw
	if compress {
		buf := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, buf, nil)
		if err != nil {
			return fmt.Errorf("lz4: %w", err)
		}
		if n > 0 && n < len(raw) {
			payload = buf[:n]
			hdr.Flags |= FlagLZ4
		}
	}
	hdr.DataSize = uint32(len(payload))

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(PackedMagic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, hdr); err != nil {
		return err
	}
	if _, err := bw.Write(payload); err != nil {
		return err
	}
	return bw.Flush()
}

// ToRGBA returns img as a tightly packed *image.RGBA with origin (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// LoadImage decodes a planet texture from disk: .ptex through DecodePacked,
// anything else through the registered image codecs (PNG, JPEG).
func LoadImage(path string) (*image.RGBA, error) {
	utils.Debug("Decoding texture: %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".ptex") {
		img, err := DecodePacked(bufio.NewReader(f))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return img, nil
	}

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%s: unsupported image format", path)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	utils.Debug("    Decoded %s %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())
	return ToRGBA(img), nil
}

// PackFile converts src (PNG/JPEG/.ptex) into an lz4-compressed .ptex at dst.
func PackFile(src, dst string) error {
	img, err := LoadImage(src)
	if err != nil {
		return err
	}

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := EncodePacked(f, img, true); err != nil {
		f.Close()
		os.Remove(dst)
		return err
	}
	return f.Close()
}
