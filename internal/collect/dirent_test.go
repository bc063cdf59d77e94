package collect

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"golang.org/x/sys/unix"
)

func TestParseDirents(t *testing.T) {
	dir := t.TempDir()
	names := []string{"alpha", "beta", "gamma"}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	fd, err := unix.Open(dir, unix.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer unix.Close(fd)

	buf := make([]byte, 32*1024)
	var got []string
	for {
		n, err := unix.Getdents(fd, buf)
		if err != nil {
			t.Fatal(err)
		}
		if n == 0 {
			break
		}
		for _, e := range parseDirents(buf, n, nil) {
			if e.name == "." || e.name == ".." {
				t.Errorf("pseudo-entry %q leaked through", e.name)
			}
			got = append(got, e.name)
		}
	}

	sort.Strings(got)
	if len(got) != len(names) {
		t.Fatalf("names = %v, want %v", got, names)
	}
	for i := range names {
		if got[i] != names[i] {
			t.Errorf("names = %v, want %v", got, names)
			break
		}
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		dir  string
		name string
		want string
	}{
		{"a", "b", "a/b"},
		{"a/", "b", "a/b"},
		{"/", "x", "/x"},
		{"/tmp/sub", "f.img", "/tmp/sub/f.img"},
	}

	for _, tt := range tests {
		if got := joinPath(tt.dir, tt.name); got != tt.want {
			t.Errorf("joinPath(%q, %q) = %q, want %q", tt.dir, tt.name, got, tt.want)
		}
	}
}
