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
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"seehuhn.de/go/ftrain/funcs"
	"seehuhn.de/go/ftrain/internal/memfile"
	"seehuhn.de/go/ftrain/internal/wire"
	"seehuhn.de/go/ftrain/poly"
)

var allCodecs = []Codec{CodecNone, CodecLZ4, CodecZstd}

func testTrain(t *testing.T) (*FT, *Box) {
	t.Helper()
	box := NewBox(3, -1, 1)
	ft, err := QuadraticAligned(funcs.Piecewise, poly.Legendre,
		[]float64{1, 2, 3}, []float64{0, 0.5, -0.5}, box, nil)
	require.NoError(t, err)
	return ft, box
}

func TestParseCodec(t *testing.T) {
	for _, c := range allCodecs {
		got, err := ParseCodec(c.String())
		require.NoError(t, err)
		require.Equal(t, c, got)
	}
	_, err := ParseCodec("gzip")
	require.Error(t, err)
	require.Equal(t, "Codec(7)", Codec(7).String())
}

func TestWriteRead(t *testing.T) {
	ft, box := testTrain(t)
	for _, codec := range allCodecs {
		t.Run(codec.String(), func(t *testing.T) {
			f := memfile.New()
			require.NoError(t, Write(f, ft, codec))
			f.Rewind()

			got, err := Read(f)
			require.NoError(t, err)
			require.Equal(t, ft.Ranks(), got.Ranks())
			checkFT(t, got, ft.Eval, box, 20, 0)
		})
	}
}

func TestChecksum(t *testing.T) {
	ft, _ := testTrain(t)
	for _, codec := range allCodecs {
		t.Run(codec.String(), func(t *testing.T) {
			f := memfile.New()
			require.NoError(t, Write(f, ft, codec))

			// corrupt the stored digest
			f.Data[headerSize-1] ^= 0x40
			f.Rewind()
			_, err := Read(f)
			require.ErrorIs(t, err, ErrChecksum)
		})
	}

	// With CodecNone, a change in the payload is detected by the digest.
	f := memfile.New()
	require.NoError(t, Write(f, ft, CodecNone))
	f.Data[len(f.Data)-1] ^= 0x01
	f.Rewind()
	_, err := Read(f)
	require.ErrorIs(t, err, ErrChecksum)
}

func TestReadMalformed(t *testing.T) {
	ft, _ := testTrain(t)
	f := memfile.New()
	require.NoError(t, Write(f, ft, CodecZstd))
	data := f.Data

	// short header
	_, err := Read(memfile.FromBytes(data[:10]))
	require.ErrorIs(t, err, wire.ErrFormat)

	// truncated payload
	g := memfile.FromBytes(append([]byte(nil), data...))
	g.Truncate(len(data) - 5)
	_, err = Read(g)
	require.Error(t, err)

	// wrong magic: a train is not an array
	_, err = ReadArray(memfile.FromBytes(data))
	require.ErrorIs(t, err, wire.ErrFormat)

	// unknown codec
	bad := append([]byte(nil), data...)
	bad[6] = 9
	_, err = Read(memfile.FromBytes(bad))
	require.ErrorIs(t, err, wire.ErrFormat)

	// unsupported version
	bad = append([]byte(nil), data...)
	bad[4] = 2
	_, err = Read(memfile.FromBytes(bad))
	require.ErrorIs(t, err, wire.ErrFormat)
}

func TestSaveLoad(t *testing.T) {
	ft, box := testTrain(t)
	dir := t.TempDir()
	for _, codec := range allCodecs {
		path := filepath.Join(dir, "train-"+codec.String()+".ft")
		require.NoError(t, ft.Save(path, codec))

		got, err := Load(path)
		require.NoError(t, err)
		checkFT(t, got, ft.Eval, box, 20, 0)
	}

	_, err := Load(filepath.Join(dir, "missing.ft"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	err = ft.Save(filepath.Join(dir, "no-such-dir", "x.ft"), CodecNone)
	require.Error(t, err)
}

func TestSaveLoadArray(t *testing.T) {
	ft, box := testTrain(t)
	a := NewArray(3)
	for i := range a.Size() {
		a.Set(i, ft)
	}

	path := filepath.Join(t.TempDir(), "array.fta")
	require.NoError(t, a.Save(path, CodecLZ4))

	b, err := LoadArray(path)
	require.NoError(t, err)
	require.Equal(t, []int{3}, b.Shape())
	for i := range b.Size() {
		checkFT(t, b.Get(i), ft.Eval, box, 5, 0)
	}

	// a file holding an array cannot be read as a single train
	_, err = Load(path)
	require.ErrorIs(t, err, wire.ErrFormat)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(headerSize))
}
