package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellEscape_Plain(t *testing.T) {
	assert.Equal(t, "yt-dlp", ShellEscape("yt-dlp"))
	assert.Equal(t, "https://youtu.be/abc123", ShellEscape("https://youtu.be/abc123"))
}

func TestShellEscape_Empty(t *testing.T) {
	assert.Equal(t, "''", ShellEscape(""))
}

func TestShellEscape_Spaces(t *testing.T) {
	assert.Equal(t, "'/storage/emulated/0/Music/Flash YTConverter'",
		ShellEscape("/storage/emulated/0/Music/Flash YTConverter"))
}

func TestShellEscape_SingleQuote(t *testing.T) {
	assert.Equal(t, `'it'"'"'s'`, ShellEscape("it's"))
}

func TestShellEscape_SpecialChars(t *testing.T) {
	for _, s := range []string{"a$b", "a`b", "a;b", "a|b", "a&b", "a>b", "a*b"} {
		escaped := ShellEscape(s)
		assert.Equal(t, "'"+s+"'", escaped)
	}
}

func TestShellEscapeCommand(t *testing.T) {
	cmd := ShellEscapeCommand("chmod", "+x", "/data/bin/yt dlp")
	assert.Equal(t, "chmod +x '/data/bin/yt dlp'", cmd)
}
