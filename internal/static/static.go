// Package static embeds the bundled sound clips into the binary
package static

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"
)

const (
	filesDir = "files"
	soundExt = ".wav"
)

//go:embed files/*
var Files embed.FS

// FilePath returns the path of a bundled file within Files.
func FilePath(name string) string {
	return path.Join(filesDir, name)
}

// SoundPath returns the path of the bundled sound called name.
func SoundPath(name string) string {
	return FilePath(name + soundExt)
}

// HasSound reports whether a bundled sound called name exists.
func HasSound(name string) bool {
	_, err := fs.Stat(Files, SoundPath(name))
	return err == nil
}

// ReadSound returns the contents of the bundled sound called name.
func ReadSound(name string) ([]byte, error) {
	return Files.ReadFile(SoundPath(name))
}

// Sounds lists the names of the bundled sounds.
func Sounds() []string {
	entries, err := Files.ReadDir(filesDir)
	if err != nil {
		return nil
	}

	var names []string

	for _, e := range entries {
		if strings.HasSuffix(e.Name(), soundExt) {
			names = append(names, strings.TrimSuffix(e.Name(), soundExt))
		}
	}

	slices.Sort(names)

	return names
}
