package runtime

import (
	"bytes"
	"os"
	"testing"
)

func TestTerminalForNonFileStdin(t *testing.T) {
	if con := terminalFor(&bytes.Buffer{}); con != nil {
		t.Fatalf("terminalFor(buffer) = %v, want nil", con)
	}
	if con := terminalFor(nil); con != nil {
		t.Fatalf("terminalFor(nil) = %v, want nil", con)
	}
}

func TestTerminalForNonTerminalFile(t *testing.T) {
	f, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	// A file that is not a terminal must not be put into raw mode.
	if con := terminalFor(f); con != nil {
		t.Fatalf("terminalFor(%s) = %v, want nil", os.DevNull, con)
	}
}
