// Package importer loads a student profile from a JSON or YAML file so a
// plan can run without the interactive form.
package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProfileFile is the on-disk profile. Field names match the HTTP request
// body so the same document works for both.
type ProfileFile struct {
	GPA             *float64          `json:"gpa,omitempty" yaml:"gpa,omitempty"`
	TargetDegree    string            `json:"target_degree" yaml:"target_degree"`
	TargetCountries []string          `json:"target_countries,omitempty" yaml:"target_countries,omitempty"`
	Budget          string            `json:"budget,omitempty" yaml:"budget,omitempty"`
	Interests       []string          `json:"interests,omitempty" yaml:"interests,omitempty"`
	TargetIntake    string            `json:"target_intake,omitempty" yaml:"target_intake,omitempty"`
	TestScores      map[string]string `json:"test_scores,omitempty" yaml:"test_scores,omitempty"`

	// ResumeText and ResumeFile are mutually exclusive. ResumeFile is
	// resolved relative to the profile file.
	ResumeText string `json:"resume_text,omitempty" yaml:"resume_text,omitempty"`
	ResumeFile string `json:"resume_file,omitempty" yaml:"resume_file,omitempty"`
}

// LoadProfileFile reads a profile. Files ending in .yaml or .yml are YAML,
// anything else is JSON. Unknown keys are rejected in both formats.
func LoadProfileFile(path string) (*ProfileFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pf ProfileFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&pf); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing profile file: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&pf); err != nil {
			return nil, fmt.Errorf("parsing profile file: %w", err)
		}
	}

	if pf.ResumeFile != "" && pf.ResumeText == "" {
		resumePath := pf.ResumeFile
		if !filepath.IsAbs(resumePath) {
			resumePath = filepath.Join(filepath.Dir(path), resumePath)
		}
		text, err := os.ReadFile(resumePath)
		if err != nil {
			return nil, fmt.Errorf("reading resume_file: %w", err)
		}
		pf.ResumeText = string(text)
	}
	return &pf, nil
}
