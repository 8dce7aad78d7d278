package utils

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestMakeMap(t *testing.T) {
	m := MakeMap("flow", "import")
	if len(m) != 1 || m["flow"] != "import" {
		t.Errorf("Expected map with flow=import, got %v", m)
	}

	m = MakeMap("flow", "import", "source", "link", "dangling")
	if len(m) != 2 || m["source"] != "link" {
		t.Errorf("Expected map with flow and source, got %v", m)
	}
}

func TestCreateDataDirectory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Creates new directory", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "data", "nested")

		err := CreateDataDirectory(filepath.Join(dataDir, "manoscerca.db"), logger)
		if err != nil {
			t.Fatalf("Failed to create data directory: %v", err)
		}

		stat, err := os.Stat(dataDir)
		if err != nil {
			t.Fatalf("Failed to stat directory: %v", err)
		}
		if !stat.IsDir() {
			t.Error("Data directory was created but is not a directory")
		}
	})

	t.Run("Handles existing directory", func(t *testing.T) {
		dataDir := t.TempDir()
		if err := CreateDataDirectory(filepath.Join(dataDir, "manoscerca.db"), logger); err != nil {
			t.Errorf("Failed on existing directory: %v", err)
		}
	})

	t.Run("Bare file name", func(t *testing.T) {
		if err := CreateDataDirectory("manoscerca.db", logger); err != nil {
			t.Errorf("Expected no error for a path without a directory, got %v", err)
		}
	})

	t.Run("Fails: if parent is a file", func(t *testing.T) {
		filePath := filepath.Join(t.TempDir(), "test-file")
		if file, err := os.Create(filePath); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		} else {
			file.Close()
		}

		err := CreateDataDirectory(filepath.Join(filePath, "manoscerca.db"), logger)
		if err == nil {
			t.Error("Expected error when parent path is a file, but got nil")
		}
	})
}
