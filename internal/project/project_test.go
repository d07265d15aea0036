package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// Writes a minimal valid project into a temp dir and returns its root.
func writeProject(t *testing.T, pin, pyproject, lock, devLock string) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		PinFile:        pin,
		DescriptorFile: pyproject,
		LockFile:       lock,
		DevLockFile:    devLock,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

const validPyproject = `[project]
name = "paper-digest"
dependencies = ["requests>=2.31", "python-dotenv"]
`

func TestLoad(t *testing.T) {
	root := writeProject(t, "3.12.4\n", validPyproject,
		"requests==2.31.0\npython-dotenv==1.0.1\n", "pytest==8.2.0\n")

	in, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if in.Name != "paper-digest" {
		t.Fatalf("Name = %q, want paper-digest", in.Name)
	}
	if in.PythonVersion != "3.12.4" {
		t.Fatalf("PythonVersion = %q, want 3.12.4", in.PythonVersion)
	}
	if len(in.Dependencies) != 2 {
		t.Fatalf("Dependencies = %v, want 2 entries", in.Dependencies)
	}
	if in.Readme != "" {
		t.Fatalf("Readme = %q, want empty (no README written)", in.Readme)
	}
	if in.Lock != filepath.Join(root, LockFile) {
		t.Fatalf("Lock = %q, want under root", in.Lock)
	}
}

func TestLoadReadmeOptional(t *testing.T) {
	root := writeProject(t, "3.12", validPyproject, "requests==2.31.0\n", "")
	if err := os.WriteFile(filepath.Join(root, ReadmeFile), []byte("# x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	in, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if in.Readme != filepath.Join(root, ReadmeFile) {
		t.Fatalf("Readme = %q, want README path", in.Readme)
	}
}

func TestLoadMissingPin(t *testing.T) {
	root := writeProject(t, "3.12", validPyproject, "", "")
	os.Remove(filepath.Join(root, PinFile))

	_, err := Load(root)
	if !errors.Is(err, ErrMissingPin) {
		t.Fatalf("err = %v, want ErrMissingPin", err)
	}
}

func TestLoadInvalidPin(t *testing.T) {
	for _, pin := range []string{"", "three", "3", "3.12.x", "v3.12"} {
		root := writeProject(t, pin, validPyproject, "", "")
		if _, err := Load(root); !errors.Is(err, ErrInvalidPin) {
			t.Fatalf("pin %q: err = %v, want ErrInvalidPin", pin, err)
		}
	}
}

func TestLoadMissingLock(t *testing.T) {
	root := writeProject(t, "3.12", validPyproject, "", "")
	os.Remove(filepath.Join(root, LockFile))

	_, err := Load(root)
	if !errors.Is(err, ErrMissingManifest) {
		t.Fatalf("err = %v, want ErrMissingManifest", err)
	}
}

func TestLoadMissingDescriptor(t *testing.T) {
	root := writeProject(t, "3.12", validPyproject, "", "")
	os.Remove(filepath.Join(root, DescriptorFile))

	_, err := Load(root)
	if !errors.Is(err, ErrMissingManifest) {
		t.Fatalf("err = %v, want ErrMissingManifest", err)
	}
}

func TestLoadDescriptorWithoutName(t *testing.T) {
	root := writeProject(t, "3.12", "[project]\ndependencies = []\n", "", "")

	_, err := Load(root)
	if !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatalf("err = %v, want ErrInvalidDescriptor", err)
	}
}
