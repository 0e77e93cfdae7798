// Package pngenc writes 8-bit RGBA pixel buffers as minimal PNG files.
//
// The output holds exactly the signature, IHDR, one IDAT and IEND. Rows
// are stored unfiltered and the pixel stream is zlib compressed, so any
// conforming decoder reads the samples back unchanged.
package pngenc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// Source is a straight alpha RGBA buffer, rows packed without padding.
type Source interface {
	Width() int
	Height() int
	Pix() []uint8
}

type CompressionLevel int

const (
	DefaultCompression CompressionLevel = 0
	NoCompression      CompressionLevel = -1
	BestSpeed          CompressionLevel = -2
	BestCompression    CompressionLevel = -3
)

var ErrInvalidImage = errors.New("invalid image")

var signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

var (
	ihdrType = [4]byte{'I', 'H', 'D', 'R'}
	idatType = [4]byte{'I', 'D', 'A', 'T'}
	iendType = [4]byte{'I', 'E', 'N', 'D'}
)

const (
	bitDepth       = 8
	colorTypeRGBA  = 6
	filterNone     = 0
	bytesPerPixel  = 4
	maxImageLength = math.MaxInt32
)

type Encoder struct {
	CompressionLevel CompressionLevel
}

// Encode writes img to w with the default compression level.
func Encode(w io.Writer, img Source) error {
	var e Encoder
	return e.Encode(w, img)
}

// Encode writes img to w. Nothing is written when img is inconsistent.
func (enc *Encoder) Encode(w io.Writer, img Source) error {
	width, height, pix := img.Width(), img.Height(), img.Pix()
	if err := checkImage(width, height, pix); err != nil {
		return err
	}

	level, err := enc.zlibLevel()
	if err != nil {
		return err
	}

	b := bufferPool.get()
	defer bufferPool.put(b)

	if err := b.compress(pix, width*bytesPerPixel, level); err != nil {
		return fmt.Errorf("could not compress pixel data: %w", err)
	}

	if _, err := w.Write(signature[:]); err != nil {
		return fmt.Errorf("could not write signature: %w", err)
	}

	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = bitDepth
	ihdr[9] = colorTypeRGBA
	ihdr[10] = 0 // deflate
	ihdr[11] = 0 // adaptive filtering
	ihdr[12] = 0 // no interlace
	if err := writeChunk(w, ihdrType, ihdr[:]); err != nil {
		return err
	}

	if err := writeChunk(w, idatType, b.idat.Bytes()); err != nil {
		return err
	}

	return writeChunk(w, iendType, nil)
}

func checkImage(width, height int, pix []uint8) error {
	n := len(pix) / bytesPerPixel
	switch {
	case width < 1 || width > maxImageLength:
		return fmt.Errorf("%w: width %d", ErrInvalidImage, width)
	case height < 1 || height > maxImageLength:
		return fmt.Errorf("%w: height %d", ErrInvalidImage, height)
	case len(pix)%bytesPerPixel != 0 || n%width != 0 || n/width != height:
		return fmt.Errorf("%w: %d bytes of pixel data for %dx%d", ErrInvalidImage, len(pix), width, height)
	}
	return nil
}

func (enc *Encoder) zlibLevel() (int, error) {
	switch enc.CompressionLevel {
	case DefaultCompression:
		return zlib.DefaultCompression, nil
	case NoCompression:
		return zlib.NoCompression, nil
	case BestSpeed:
		return zlib.BestSpeed, nil
	case BestCompression:
		return zlib.BestCompression, nil
	default:
		return 0, fmt.Errorf("unsupported compression level: %d", enc.CompressionLevel)
	}
}

// writeChunk writes length, type, data and the CRC of type and data.
func writeChunk(w io.Writer, typ [4]byte, data []byte) error {
	if len(data) > maxImageLength {
		return fmt.Errorf("%s chunk too large: %d bytes", typ[:], len(data))
	}

	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(len(data)))
	copy(hdr[4:], typ[:])

	crc := crc32.NewIEEE()
	crc.Write(typ[:])
	crc.Write(data)
	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], crc.Sum32())

	for _, part := range [][]byte{hdr[:], data, footer[:]} {
		if len(part) == 0 {
			continue
		}
		if _, err := w.Write(part); err != nil {
			return fmt.Errorf("could not write %s chunk: %w", typ[:], err)
		}
	}
	return nil
}

// buffer holds the scratch state reused between encodes.
type buffer struct {
	row   []byte
	idat  bytes.Buffer
	zw    *zlib.Writer
	level int
}

// compress deflates pix row by row, each row prefixed by its filter type.
func (b *buffer) compress(pix []uint8, stride, level int) error {
	b.idat.Reset()
	if b.zw == nil || b.level != level {
		zw, err := zlib.NewWriterLevel(&b.idat, level)
		if err != nil {
			return err
		}
		b.zw, b.level = zw, level
	} else {
		b.zw.Reset(&b.idat)
	}

	if cap(b.row) < stride+1 {
		b.row = make([]byte, stride+1)
	}
	row := b.row[:stride+1]
	row[0] = filterNone
	for off := 0; off < len(pix); off += stride {
		copy(row[1:], pix[off:off+stride])
		if _, err := b.zw.Write(row); err != nil {
			return err
		}
	}
	return b.zw.Close()
}

type scratchPool struct {
	pool sync.Pool
}

func (p *scratchPool) get() *buffer {
	return p.pool.Get().(*buffer)
}

func (p *scratchPool) put(b *buffer) {
	p.pool.Put(b)
}

var bufferPool = &scratchPool{
	pool: sync.Pool{
		New: func() any {
			return &buffer{}
		},
	},
}
