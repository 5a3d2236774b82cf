// seehuhn.de/go/ftrain - function-train approximation of multivariate functions
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ftrain

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	"seehuhn.de/go/ftrain/internal/wire"
)

// Files written by this package start with a header
//
//	magic     [4]byte   "FTRN" for trains, "FTRA" for arrays
//	version   uint16    formatVersion
//	codec     uint8     compression of the payload
//	size      uint64    length of the uncompressed payload
//	digest    [32]byte  BLAKE3-256 of the uncompressed payload
//
// followed by the (possibly compressed) payload, which is the output of
// [FT.Encode] or [Array.Encode].  All integers are little-endian.
const (
	formatVersion = 1
	headerSize    = 4 + 2 + 1 + 8 + 32

	// maxPayload bounds the uncompressed size accepted when reading.
	maxPayload = 1 << 32
)

var (
	trainMagic = [4]byte{'F', 'T', 'R', 'N'}
	arrayMagic = [4]byte{'F', 'T', 'R', 'A'}
)

// ErrChecksum is returned when the digest stored in a file does not match
// the decoded data.
var ErrChecksum = errors.New("ftrain: checksum mismatch")

// Codec selects the compression of saved files.
type Codec uint8

// These are the supported codecs.
const (
	CodecNone Codec = 0
	CodecLZ4  Codec = 1
	CodecZstd Codec = 2
)

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecLZ4:
		return "lz4"
	case CodecZstd:
		return "zstd"
	default:
		return fmt.Sprintf("Codec(%d)", uint8(c))
	}
}

// ParseCodec converts a codec name, as returned by [Codec.String], into
// a Codec.
func ParseCodec(name string) (Codec, error) {
	switch name {
	case "none", "":
		return CodecNone, nil
	case "lz4":
		return CodecLZ4, nil
	case "zstd":
		return CodecZstd, nil
	}
	return 0, fmt.Errorf("unknown codec %q", name)
}

// The zstd encoder and decoder are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("ftrain: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxPayload))
	if err != nil {
		panic("ftrain: zstd decoder initialization failed: " + err.Error())
	}
}

// Write writes ft to w, in the file format described above.
func Write(w io.Writer, ft *FT, codec Codec) error {
	e := &wire.Writer{}
	ft.Encode(e)
	return writeContainer(w, trainMagic, e.Bytes(), codec)
}

// Read reads a function train written by [Write].
func Read(r io.Reader) (*FT, error) {
	payload, err := readContainer(r, trainMagic)
	if err != nil {
		return nil, err
	}
	ft := &FT{}
	if err := ft.UnmarshalBinary(payload); err != nil {
		return nil, err
	}
	return ft, nil
}

// WriteArray writes a to w, in the file format described above.
func WriteArray(w io.Writer, a *Array, codec Codec) error {
	e := &wire.Writer{}
	a.Encode(e)
	return writeContainer(w, arrayMagic, e.Bytes(), codec)
}

// ReadArray reads an array written by [WriteArray].
func ReadArray(r io.Reader) (*Array, error) {
	payload, err := readContainer(r, arrayMagic)
	if err != nil {
		return nil, err
	}
	d := wire.NewReader(payload)
	a, err := DecodeArray(d)
	if err != nil {
		return nil, err
	}
	if d.Remaining() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after array: %w", d.Remaining(), wire.ErrFormat)
	}
	return a, nil
}

// Save writes ft to the named file.
func (ft *FT) Save(path string, codec Codec) error {
	return saveFile(path, func(w io.Writer) error { return Write(w, ft, codec) })
}

// Load reads a function train from the named file.
func Load(path string) (*FT, error) {
	var ft *FT
	err := loadFile(path, func(r io.Reader) error {
		var err error
		ft, err = Read(r)
		return err
	})
	return ft, err
}

// Save writes a to the named file.
func (a *Array) Save(path string, codec Codec) error {
	return saveFile(path, func(w io.Writer) error { return WriteArray(w, a, codec) })
}

// LoadArray reads an array of function trains from the named file.
func LoadArray(path string) (*Array, error) {
	var a *Array
	err := loadFile(path, func(r io.Reader) error {
		var err error
		a, err = ReadArray(r)
		return err
	})
	return a, err
}

func saveFile(path string, write func(io.Writer) error) (err error) {
	fd, err := os.Create(path)
	if err != nil {
		logger.Warn("cannot create file", zap.String("path", path), zap.Error(err))
		return err
	}
	defer func() {
		closeErr := fd.Close()
		if err == nil {
			err = closeErr
		}
	}()

	err = write(fd)
	if err != nil {
		logger.Warn("cannot write file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func loadFile(path string, read func(io.Reader) error) error {
	fd, err := os.Open(path)
	if err != nil {
		logger.Warn("cannot open file", zap.String("path", path), zap.Error(err))
		return err
	}
	defer fd.Close()

	err = read(fd)
	if err != nil {
		logger.Warn("cannot read file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func writeContainer(w io.Writer, magic [4]byte, payload []byte, codec Codec) error {
	body, codec, err := compress(payload, codec)
	if err != nil {
		return err
	}
	digest := blake3.Sum256(payload)

	header := make([]byte, 0, headerSize)
	header = append(header, magic[:]...)
	header = binary.LittleEndian.AppendUint16(header, formatVersion)
	header = append(header, byte(codec))
	header = binary.LittleEndian.AppendUint64(header, uint64(len(payload)))
	header = append(header, digest[:]...)

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(body)
	if err == nil {
		logger.Debug("function train data written",
			zap.Stringer("codec", codec),
			zap.Int("size", len(payload)),
			zap.Int("stored", len(body)))
	}
	return err
}

func readContainer(r io.Reader, magic [4]byte) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("short header: %w", wire.ErrFormat)
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return nil, fmt.Errorf("invalid magic %q: %w", data[:4], wire.ErrFormat)
	}
	version := binary.LittleEndian.Uint16(data[4:6])
	if version != formatVersion {
		return nil, fmt.Errorf("unsupported format version %d: %w", version, wire.ErrFormat)
	}
	codec := Codec(data[6])
	size := binary.LittleEndian.Uint64(data[7:15])
	if size > maxPayload {
		return nil, fmt.Errorf("payload of %d bytes: %w", size, wire.ErrFormat)
	}
	var digest [32]byte
	copy(digest[:], data[15:headerSize])

	payload, err := decompress(data[headerSize:], codec, int(size))
	if err != nil {
		return nil, err
	}
	if blake3.Sum256(payload) != digest {
		return nil, ErrChecksum
	}
	return payload, nil
}

// compress applies the codec to data.  If LZ4 cannot compress the data,
// the data is stored uncompressed and CodecNone is returned.
func compress(data []byte, codec Codec) ([]byte, Codec, error) {
	switch codec {
	case CodecNone:
		return data, CodecNone, nil
	case CodecLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("lz4 compress: %w", err)
		}
		if n == 0 {
			return data, CodecNone, nil
		}
		return buf[:n], CodecLZ4, nil
	case CodecZstd:
		return zstdEncoder.EncodeAll(data, nil), CodecZstd, nil
	}
	return nil, 0, fmt.Errorf("unsupported codec %d", uint8(codec))
}

func decompress(body []byte, codec Codec, size int) ([]byte, error) {
	var res []byte
	switch codec {
	case CodecNone:
		res = body
	case CodecLZ4:
		// an LZ4 block expands its input by at most a factor of 255
		if size > 255*len(body)+16 {
			return nil, fmt.Errorf("lz4 block of %d bytes for %d bytes of data: %w",
				len(body), size, wire.ErrFormat)
		}
		res = make([]byte, size)
		n, err := lz4.UncompressBlock(body, res)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", errors.Join(err, wire.ErrFormat))
		}
		res = res[:n]
	case CodecZstd:
		var err error
		res, err = zstdDecoder.DecodeAll(body, make([]byte, 0, min(size, 1<<20)))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", errors.Join(err, wire.ErrFormat))
		}
	default:
		return nil, fmt.Errorf("unknown codec %d: %w", uint8(codec), wire.ErrFormat)
	}
	if len(res) != size {
		return nil, fmt.Errorf("payload has %d bytes, expected %d: %w", len(res), size, wire.ErrFormat)
	}
	return res, nil
}
