package rpmdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	gorpmdb "github.com/knqyf263/go-rpmdb/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageString(t *testing.T) {
	p := Package{Name: "bash", Version: "5.2.15", Release: "alt1", Epoch: 2}
	assert.Equal(t, "bash-5.2.15-alt1", p.String())
	assert.Equal(t, "2:5.2.15-alt1", p.EVR())
}

func TestVersionComparator(t *testing.T) {
	tests := []struct {
		name string
		a, b Package
		want int
	}{
		{
			name: "equal",
			a:    Package{Version: "1.0", Release: "alt1"},
			b:    Package{Version: "1.0", Release: "alt1"},
			want: 0,
		},
		{
			name: "numeric version segments",
			a:    Package{Version: "1.10", Release: "alt1"},
			b:    Package{Version: "1.9", Release: "alt1"},
			want: 1,
		},
		{
			name: "release decides",
			a:    Package{Version: "1.0", Release: "alt1"},
			b:    Package{Version: "1.0", Release: "alt2"},
			want: -1,
		},
		{
			name: "epoch dominates",
			a:    Package{Version: "1.0", Release: "alt1", Epoch: 1},
			b:    Package{Version: "9.9", Release: "alt9"},
			want: 1,
		},
	}

	var cmp VersionComparator
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cmp.Compare(tt.a, tt.b))
			assert.Equal(t, -tt.want, cmp.Compare(tt.b, tt.a))
		})
	}
}

func TestReadEmpty(t *testing.T) {
	_, err := NewDBReader().Read(nil)
	require.ErrorIs(t, err, ErrDatabase)
}

func TestReadGarbage(t *testing.T) {
	_, err := NewDBReader().Read([]byte("definitely not a berkeley db"))
	require.ErrorIs(t, err, ErrDatabase)
}

// testdata/rpmdb.sqlite holds two headers: bash without an epoch and
// kernel with epoch 1.
func TestReadSQLiteDatabase(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "rpmdb.sqlite"))
	require.NoError(t, err)

	pkgs, err := NewDBReaderNamed("rpmdb.sqlite").Read(raw)
	require.NoError(t, err)

	want := map[string]Package{
		"bash":   {Name: "bash", Version: "5.2.15", Release: "alt1", Summary: "The GNU Bourne Again SHell"},
		"kernel": {Name: "kernel", Version: "6.6.30", Release: "alt1", Epoch: 1, Summary: "The Linux kernel"},
	}
	if diff := cmp.Diff(want, pkgs); diff != "" {
		t.Fatalf("packages mismatch (-want +got):\n%s", diff)
	}
}

func TestFromInfos(t *testing.T) {
	epoch := 3
	infos := []*gorpmdb.PackageInfo{
		{Name: "vim", Version: "9.0", Release: "alt1", Summary: "old"},
		{Name: "curl", Version: "8.5.0", Release: "alt2", Epoch: &epoch, Summary: "transfer tool"},
		{Name: "vim", Version: "9.1", Release: "alt1", Summary: "new"},
	}

	want := map[string]Package{
		"curl": {Name: "curl", Version: "8.5.0", Release: "alt2", Epoch: 3, Summary: "transfer tool"},
		"vim":  {Name: "vim", Version: "9.1", Release: "alt1", Summary: "new"},
	}
	if diff := cmp.Diff(want, fromInfos(infos)); diff != "" {
		t.Fatalf("fromInfos mismatch (-want +got):\n%s", diff)
	}
}
