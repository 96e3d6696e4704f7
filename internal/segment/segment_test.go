package segment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNameParseGenRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 42, 1000000}
	for _, gen := range cases {
		name := Name(gen)
		got, err := ParseGen(name)
		require.NoError(t, err)
		require.Equal(t, gen, got)
	}
}

func TestParseGenRejectsBadNames(t *testing.T) {
	bad := []string{"segment_00001.seg", "1.txt", "gen1.log", ".log", "01a.log"}
	for _, name := range bad {
		_, err := ParseGen(name)
		require.Error(t, err)
	}
}

func TestListSortsAscendingAndIgnoresStrayFiles(t *testing.T) {
	dir := t.TempDir()
	for _, gen := range []uint64{3, 1, 2} {
		require.NoError(t, os.WriteFile(Path(dir, gen), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".engine"), []byte("kvs"), 0o644))

	gens, err := List(dir)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2, 3}, gens)
}
