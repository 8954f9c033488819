// Package projectconfig reads the optional .cybedefend.yaml file at the root of a project.
//
//	projectId: 3f0c9b9e-5a9f-4c55-9b1a-0d7f2c1e4a10
//	exclude:
//	  - dist/
//	  - "**/*.min.js"
package projectconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/constants"
)

const schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "projectId": {
      "type": "string",
      "minLength": 1
    },
    "exclude": {
      "type": "array",
      "items": {
        "type": "string",
        "minLength": 1
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(schema)

type ProjectConfig struct {
	ProjectId string   `yaml:"projectId" json:"projectId,omitempty"`
	Exclude   []string `yaml:"exclude" json:"exclude,omitempty"`
}

// Load reads the project configuration below root. A missing file yields an empty configuration.
func Load(root string) (*ProjectConfig, error) {
	fileName := filepath.Join(root, constants.CYBEDEFEND_PROJECT_CONFIG_FILE)
	content, err := os.ReadFile(fileName)
	if errors.Is(err, fs.ErrNotExist) {
		return &ProjectConfig{}, nil
	}
	if err != nil {
		return nil, err
	}

	return Parse(content)
}

func Parse(content []byte) (*ProjectConfig, error) {
	var raw any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", constants.CYBEDEFEND_PROJECT_CONFIG_FILE, err)
	}
	if raw == nil {
		return &ProjectConfig{}, nil
	}

	document, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", constants.CYBEDEFEND_PROJECT_CONFIG_FILE, err)
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, fmt.Errorf("failed to validate %s: %w", constants.CYBEDEFEND_PROJECT_CONFIG_FILE, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, resultErr := range result.Errors() {
			details = append(details, resultErr.String())
		}
		return nil, fmt.Errorf("invalid %s: %s", constants.CYBEDEFEND_PROJECT_CONFIG_FILE, strings.Join(details, "; "))
	}

	config := &ProjectConfig{}
	if err = json.Unmarshal(document, config); err != nil {
		return nil, err
	}
	return config, nil
}
