// Package suite loads test suite definitions from JSON or YAML files
// into an ordered list of typed test cases.
package suite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Case is a single black-box test case: input fed to the subject
// binary's stdin and the stdout expected back. Cases are immutable
// once loaded.
type Case struct {
	Name     string
	Input    string
	Expected string
}

// Suite is an ordered collection of test cases. Order is significant
// and preserved through execution and reporting.
type Suite struct {
	Path  string
	Cases []Case
}

// suiteFile mirrors the on-disk document shape. Unrecognized extra
// fields are ignored by both codecs.
type suiteFile struct {
	TestCases []caseFile `json:"test_cases" yaml:"test_cases"`
}

type caseFile struct {
	Name     string `json:"name" yaml:"name"`
	Input    string `json:"input" yaml:"input"`
	Expected string `json:"expected" yaml:"expected"`
}

// Load reads and decodes a suite file. The format is chosen by
// extension: .yaml/.yml decode as YAML, anything else as JSON.
// A document without a top-level test_cases list is an error; an
// empty list is a valid empty suite. Missing per-case fields get
// explicit defaults: empty input/expected, and "Test <i>" (1-based)
// for the name.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite %s: %w", path, err)
	}

	var sf suiteFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &sf)
	default:
		err = json.Unmarshal(data, &sf)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing suite %s: %w", path, err)
	}

	// A present-but-empty list decodes as a non-nil empty slice;
	// nil means the key was absent entirely.
	if sf.TestCases == nil {
		return nil, fmt.Errorf("suite %s: missing test_cases list", path)
	}

	cases := make([]Case, len(sf.TestCases))
	for i, c := range sf.TestCases {
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("Test %d", i+1)
		}
		cases[i] = Case{Name: name, Input: c.Input, Expected: c.Expected}
	}

	return &Suite{Path: path, Cases: cases}, nil
}
