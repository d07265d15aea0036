package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (

	// File holding the interpreter version pin (e.g., "3.12.4").
	PinFile = ".python-version"

	// Project descriptor consumed by the package manager.
	DescriptorFile = "pyproject.toml"

	// Production dependency lock manifest.
	LockFile = "requirements.lock"

	// Development dependency lock manifest.
	DevLockFile = "requirements-dev.lock"

	// Documentation file referenced by the descriptor. Consulted by the
	// package manager during sync but never parsed by this tool.
	ReadmeFile = "README.md"
)

// Accepted version pin format: major.minor with an optional patch component.
var pinPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)

// The resolved build inputs of a project.
//
// All paths are absolute. Readme is empty when the project has no README.
type Inputs struct {
	Root          string   // Project root directory.
	Name          string   // Project name from the descriptor.
	PythonVersion string   // Interpreter version pin.
	Descriptor    string   // Path to the project descriptor.
	Lock          string   // Path to the production lock manifest.
	DevLock       string   // Path to the development lock manifest.
	Pin           string   // Path to the version pin file.
	Readme        string   // Path to the README, if present.
	Dependencies  []string // Dependency specifiers declared by the descriptor.
}

// Shape of the descriptor fields this tool consumes.
type descriptor struct {
	Project struct {
		Name         string   `toml:"name"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// Reads and validates the build inputs from a project root.
//
// The version pin and both lock manifests must exist; the README is
// optional. The descriptor must declare a project name. Fails before any
// container work can start when an input is missing or malformed.
func Load(root string) (*Inputs, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	pin, err := readPin(filepath.Join(root, PinFile))
	if err != nil {
		return nil, err
	}

	desc, err := readDescriptor(filepath.Join(root, DescriptorFile))
	if err != nil {
		return nil, err
	}

	in := &Inputs{
		Root:          root,
		Name:          desc.Project.Name,
		PythonVersion: pin,
		Descriptor:    filepath.Join(root, DescriptorFile),
		Lock:          filepath.Join(root, LockFile),
		DevLock:       filepath.Join(root, DevLockFile),
		Pin:           filepath.Join(root, PinFile),
		Dependencies:  desc.Project.Dependencies,
	}

	for _, path := range []string{in.Lock, in.DevLock} {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingManifest, filepath.Base(path))
		}
	}

	if readme := filepath.Join(root, ReadmeFile); exists(readme) {
		in.Readme = readme
	}

	return in, nil
}

// Reads the version pin file and validates its format.
func readPin(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrMissingPin, filepath.Base(path))
		}
		return "", fmt.Errorf("%w: %w", ErrMissingPin, err)
	}

	pin := strings.TrimSpace(string(b))
	if !pinPattern.MatchString(pin) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPin, pin)
	}

	return pin, nil
}

// Reads and parses the project descriptor.
func readDescriptor(path string) (*descriptor, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingManifest, filepath.Base(path))
		}
		return nil, fmt.Errorf("%w: %w", ErrMissingManifest, err)
	}

	var desc descriptor
	if err := toml.Unmarshal(b, &desc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}

	if desc.Project.Name == "" {
		return nil, fmt.Errorf("%w: missing project name", ErrInvalidDescriptor)
	}

	return &desc, nil
}

// Whether the given path exists.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
