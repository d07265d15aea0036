package run

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseEnvFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr bool
	}{
		{
			name:    "simple entries",
			content: "A=1\nB=2\n",
			want:    []string{"A=1", "B=2"},
		},
		{
			name:    "comments and blanks skipped",
			content: "# comment\n\nA=1\n  # indented comment\n",
			want:    []string{"A=1"},
		},
		{
			name:    "export prefix ignored",
			content: "export TOKEN=abc\n",
			want:    []string{"TOKEN=abc"},
		},
		{
			name:    "double quoted with escapes",
			content: `MSG="line1\nline2"`,
			want:    []string{"MSG=line1\nline2"},
		},
		{
			name:    "single quoted literal",
			content: `RAW='a\nb'`,
			want:    []string{`RAW=a\nb`},
		},
		{
			name:    "unquoted inline comment stripped",
			content: "PORT=8080 # service port\n",
			want:    []string{"PORT=8080"},
		},
		{
			name:    "empty value",
			content: "EMPTY=\n",
			want:    []string{"EMPTY="},
		},
		{
			name:    "value with equals sign",
			content: "URL=postgres://u:p@h/db?sslmode=disable\n",
			want:    []string{"URL=postgres://u:p@h/db?sslmode=disable"},
		},
		{
			name:    "windows line endings",
			content: "A=1\r\nB=2\r\n",
			want:    []string{"A=1", "B=2"},
		},
		{
			name:    "missing equals",
			content: "NOVALUE\n",
			wantErr: true,
		},
		{
			name:    "empty key",
			content: "=value\n",
			wantErr: true,
		},
		{
			name:    "unterminated double quote",
			content: `BAD="open`,
			wantErr: true,
		},
		{
			name:    "unterminated single quote",
			content: `BAD='open`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEnvFile([]byte(tt.content), ".env")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrEnvFile) {
					t.Fatalf("error %v is not ErrEnvFile", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("entries = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entries[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseEnvFileOrderPreserved(t *testing.T) {
	got, err := parseEnvFile([]byte("Z=1\nA=2\nM=3\n"), ".env")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Z=1", "A=2", "M=3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entries = %v, want declaration order %v", got, want)
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("A=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := loadEnvFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "A=1" {
		t.Fatalf("entries = %v, want [A=1]", got)
	}
}

func TestLoadEnvFileMissing(t *testing.T) {
	_, err := loadEnvFile(filepath.Join(t.TempDir(), "absent.env"))
	if !errors.Is(err, ErrEnvFile) {
		t.Fatalf("error = %v, want ErrEnvFile", err)
	}
}
