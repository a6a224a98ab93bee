package config

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
)

// Read reads a scenario from the given file. Environment variable references such as
// ${PURSUIT_SPACING} are substituted before decoding.
func Read(filePath string) (*Scenario, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(filePath, bytes.NewReader(buf))
}

// FromReader reads a scenario from the given reader and specifies
// where, if applicable, the file the reader originated from.
// Defaults are applied and the result validated.
func FromReader(originalPath string, r io.Reader) (*Scenario, error) {
	scenario := Scenario{ConfigFilePath: originalPath}
	if err := json.NewDecoder(r).Decode(&scenario); err != nil {
		return nil, errors.Wrapf(err, "failed to decode scenario from json")
	}
	scenario.ApplyDefaults()
	if err := scenario.Validate("scenario"); err != nil {
		return nil, err
	}
	return &scenario, nil
}
