package view

import (
	"bytes"
	"os"
	"testing"

	"github.com/dmitrijs2005/photodrop/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_PlainTags(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Info("Uploading...")
	p.Blocked("No upload destination configured.")
	p.Success("Upload successful!")
	p.Error("Error uploading image: boom")

	assert.Equal(t,
		"[info] Uploading...\n"+
			"[blocked] No upload destination configured.\n"+
			"[ok] Upload successful!\n"+
			"[error] Error uploading image: boom\n",
		buf.String())
}

func TestPrinter_ColorsOnTerminal(t *testing.T) {
	old := isTerminal
	defer func() { isTerminal = old }()
	isTerminal = func(int) bool { return true }

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	p := New(f)
	p.Success("done")
	p.Error("failed")

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Equal(t, "\033[32mdone\033[0m\n\033[31mfailed\033[0m\n", string(data))
}

func TestPrinter_FileNotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, New(f).color)
}

func TestHome(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Home(nil)
	assert.Contains(t, buf.String(), "[blocked] Not Logged In")

	buf.Reset()
	p.Home(&models.Principal{ID: "u1", Email: "alice@example.com"})
	assert.Equal(t, "Logged in as:\n[ok] alice@example.com\n", buf.String())
}
