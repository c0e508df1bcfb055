package services

import (
	"io"
	"os"
	"testing"

	"github.com/MrLemur/gitreport/internal/ui"
)

func TestMain(m *testing.M) {
	restore := ui.SetOutput(io.Discard)
	code := m.Run()
	restore()
	os.Exit(code)
}
