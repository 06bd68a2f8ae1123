package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tauraamui/xerror"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func encodeOutput(v interface{}, format string, pretty bool) ([]byte, error) {
	switch strings.ToLower(format) {
	case formatYAML, "yml":
		return yaml.Marshal(v)
	case formatJSON, "":
		if pretty {
			return json.MarshalIndent(v, "", "  ")
		}
		return json.Marshal(v)
	default:
		return nil, xerror.Errorf("unknown output format %q, expected json or yaml", format)
	}
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if len(path) == 0 {
		if _, err := stdout.Write(append(data, '\n')); err != nil {
			return xerror.Errorf("unable to write output: %w", err)
		}
		return nil
	}

	if err := fs.MkdirAll(filepath.Dir(path), os.ModeDir|os.ModePerm); err != nil {
		return xerror.Errorf("unable to create output directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return xerror.Errorf("unable to write output to %s: %w", path, err)
	}
	return nil
}

func stdoutIsTerminal() bool {
	f, ok := stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
