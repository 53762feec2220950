package catalog

import (
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/menuseed/internal/embedded"
	"github.com/agentstation/menuseed/pkg/errors"
)

// Default returns the demo dataset compiled into the binary.
func Default() (*Dataset, error) {
	return LoadFS(embedded.FS, embedded.DatasetPath)
}

// Load reads a dataset from a YAML file on disk.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads a dataset from a YAML file in fsys.
func LoadFS(fsys fs.FS, path string) (*Dataset, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a YAML dataset. name is only used in error messages.
// Unknown keys are rejected so typos in field names surface early.
func Parse(data []byte, name string) (*Dataset, error) {
	var ds Dataset
	if err := yaml.UnmarshalWithOptions(data, &ds, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.NewParseError("yaml", name, yaml.FormatError(err, false, true), err)
	}
	return &ds, nil
}

// Marshal encodes the dataset back to YAML.
func (d *Dataset) Marshal() ([]byte, error) {
	return yaml.MarshalWithOptions(d, yaml.Indent(2), yaml.IndentSequence(true))
}
