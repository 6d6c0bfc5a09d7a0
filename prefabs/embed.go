package prefabs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is where tuning files on disk override the embedded defaults.
var Dir = "prefabs"

var (
	//go:embed *.yaml
	specFiles embed.FS

	//go:embed scripts/*.tengo
	scriptFiles embed.FS
)

// Load returns the tuning file name, preferring the copy under Dir.
func Load(name string) ([]byte, error) {
	return overlay(specFiles, relPath(name, false))
}

// LoadScript returns a tengo script, preferring the copy under Dir/scripts.
func LoadScript(name string) ([]byte, error) {
	return overlay(scriptFiles, cleanScriptPath(name))
}

// overlay reads rel from Dir and falls back to fsys when the disk copy is
// missing. Other disk errors are reported rather than masked.
func overlay(fsys fs.FS, rel string) ([]byte, error) {
	if rel == "" {
		return nil, fmt.Errorf("prefabs: empty file name")
	}
	data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(rel)))
	switch {
	case err == nil:
		return data, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}
	return fs.ReadFile(fsys, rel)
}

// relPath strips any leading prefabs/ (and scripts/ for scripts) so callers
// may pass either a bare name or a repository-relative path.
func relPath(name string, script bool) string {
	s := strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
	if script {
		s = strings.TrimPrefix(s, "scripts/")
	}
	return path.Clean(s)
}

func cleanScriptPath(name string) string {
	if name == "" {
		return ""
	}
	return path.Join("scripts", relPath(name, true))
}
