package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bvbever/osm2pgsql/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readDump(t *testing.T, path string, c Compression) []byte {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r, err := NewReader(f, c)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return data
}

func TestCreateCommit(t *testing.T) {
	payload := bytes.Repeat([]byte("node-location-"), 50_000)

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nodes.bin"+c.Ext())

			f, err := Create(path, WithCompression(c), WithSync(false))
			require.NoError(t, err)
			assert.Equal(t, path, f.Path())

			// Written before the final path exists.
			_, err = os.Stat(path)
			assert.True(t, os.IsNotExist(err))

			for off := 0; off < len(payload); off += 1000 {
				_, err := f.Write(payload[off:min(off+1000, len(payload))])
				require.NoError(t, err)
			}
			require.NoError(t, f.Commit())

			_, err = os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err))
			assert.Equal(t, payload, readDump(t, path, c))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, info.Size(), f.Written())
			if c != CompressionNone {
				assert.Less(t, info.Size(), int64(len(payload)))
			}

			_, err = f.Write([]byte("x"))
			assert.ErrorIs(t, err, os.ErrClosed)
			assert.ErrorIs(t, f.Commit(), os.ErrClosed)
			assert.NoError(t, f.Abort())
		})
	}
}

func TestAbort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodes.bin")

	f, err := Create(path)
	require.NoError(t, err)
	_, err = f.Write([]byte("partial"))
	require.NoError(t, err)

	require.NoError(t, f.Abort())
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCommitFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(ffs *fs.FaultyFS)
	}{
		{
			name: "write",
			setup: func(ffs *fs.FaultyFS) {
				fault := fs.NoFault
				fault.FailAfterBytes = 10
				ffs.AddRule(".tmp", fault)
			},
		},
		{
			name: "sync",
			setup: func(ffs *fs.FaultyFS) {
				fault := fs.NoFault
				fault.FailOnSync = true
				ffs.AddRule(".tmp", fault)
			},
		},
		{
			name: "close",
			setup: func(ffs *fs.FaultyFS) {
				fault := fs.NoFault
				fault.FailOnClose = true
				ffs.AddRule(".tmp", fault)
			},
		},
		{
			name: "rename",
			setup: func(ffs *fs.FaultyFS) {
				ffs.FailOnRename = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nodes.bin")
			ffs := fs.NewFaultyFS(nil)
			tt.setup(ffs)

			f, err := Create(path, WithFileSystem(ffs))
			require.NoError(t, err)

			// Small writes stay in the buffer, so failures surface at Commit.
			_, err = f.Write(bytes.Repeat([]byte{1}, 100))
			require.NoError(t, err)

			err = f.Commit()
			require.Error(t, err)
			assert.ErrorIs(t, err, fs.ErrInjected)

			_, err = os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err), "temp file must be removed")
			_, err = os.Stat(path)
			assert.True(t, os.IsNotExist(err), "final file must not exist")
		})
	}
}

func TestCreateError(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "missing", "nodes.bin"))
	assert.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in   string
		want Compression
	}{
		{"", CompressionNone},
		{"none", CompressionNone},
		{"LZ4", CompressionLZ4},
		{"zstd", CompressionZSTD},
		{" zst ", CompressionZSTD},
	}
	for _, tt := range tests {
		got, err := ParseCompression(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseCompression("gzip")
	assert.ErrorIs(t, err, ErrUnknownCompression)

	_, err = NewReader(bytes.NewReader(nil), Compression(9))
	assert.ErrorIs(t, err, ErrUnknownCompression)

	_, err = Create(filepath.Join(t.TempDir(), "x.bin"), WithCompression(Compression(9)))
	assert.ErrorIs(t, err, ErrUnknownCompression)
	assert.Equal(t, "Compression(9)", Compression(9).String())
}
