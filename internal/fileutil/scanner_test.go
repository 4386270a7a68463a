package fileutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestScanDirectory(t *testing.T) {
	// Create a temporary test directory structure:
	// tmpDir/
	//   a.txt
	//   b.log
	//   sub/
	//     c.txt
	//     deep/
	//       d.txt
	//   .hidden/
	//     e.txt
	//   node_modules/
	//     f.js
	tmpDir := t.TempDir()

	testFiles := []string{
		"a.txt",
		"b.log",
		"sub/c.txt",
		"sub/deep/d.txt",
		".hidden/e.txt",
		"node_modules/f.js",
	}

	for _, f := range testFiles {
		path := filepath.Join(tmpDir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte("test content"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}

	tests := []struct {
		name          string
		opts          ScanOptions
		wantFileNames []string
	}{
		{
			name:          "default scan yields every regular file at every depth",
			opts:          ScanOptions{},
			wantFileNames: []string{"a.txt", "b.log", "e.txt", "f.js", "c.txt", "d.txt"},
		},
		{
			name:          "skip hidden dirs",
			opts:          ScanOptions{SkipHidden: true},
			wantFileNames: []string{"a.txt", "b.log", "f.js", "c.txt", "d.txt"},
		},
		{
			name:          "excluded dirs are skipped",
			opts:          ScanOptions{ExcludeDirs: []string{"node_modules"}, SkipHidden: true},
			wantFileNames: []string{"a.txt", "b.log", "c.txt", "d.txt"},
		},
		{
			name:          "excluding a nested dir prunes its subtree",
			opts:          ScanOptions{ExcludeDirs: []string{"sub"}, SkipHidden: true},
			wantFileNames: []string{"a.txt", "b.log", "f.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanDirectory(tmpDir, tt.opts)
			if err != nil {
				t.Fatalf("ScanDirectory failed: %v", err)
			}
			if len(result.Errors) != 0 {
				t.Errorf("unexpected scan errors: %v", result.Errors)
			}

			gotNames := make(map[string]bool)
			for _, f := range result.Files {
				gotNames[filepath.Base(f)] = true
			}
			if len(result.Files) != len(tt.wantFileNames) {
				t.Errorf("got %d files %v, want %d", len(result.Files), result.Files, len(tt.wantFileNames))
			}
			for _, want := range tt.wantFileNames {
				if !gotNames[want] {
					t.Errorf("missing expected file %s in %v", want, result.Files)
				}
			}
		})
	}
}

func TestScanDirectorySortedOutput(t *testing.T) {
	tmpDir := t.TempDir()
	for _, f := range []string{"zz.txt", "aa.txt", "mm.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, f), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}

	result, err := ScanDirectory(tmpDir, ScanOptions{})
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}

	for i := 1; i < len(result.Files); i++ {
		if result.Files[i-1] >= result.Files[i] {
			t.Errorf("output not sorted: %v", result.Files)
		}
	}
}

func TestScanDirectoryErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := ScanDirectory(filepath.Join(t.TempDir(), "nope"), ScanOptions{})
		if err == nil {
			t.Error("expected error for missing directory")
		}
	})

	t.Run("path is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
		_, err := ScanDirectory(path, ScanOptions{})
		if err == nil {
			t.Error("expected error for non-directory path")
		}
	})
}

func TestScanDirectorySymlinkCycle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	tmpDir := t.TempDir()
	sub := filepath.Join(tmpDir, "sub")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "inner.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	// Link back to the root, forming a cycle if links were followed
	if err := os.Symlink(tmpDir, filepath.Join(sub, "loop")); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	result, err := ScanDirectory(tmpDir, ScanOptions{})
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}
	if len(result.Files) != 1 || filepath.Base(result.Files[0]) != "inner.txt" {
		t.Errorf("expected exactly inner.txt, got %v", result.Files)
	}
}
