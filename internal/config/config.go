package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/osforge/osforge/internal/pipeline"
	"github.com/osforge/osforge/internal/service"
	"github.com/osforge/osforge/internal/variable"
	"github.com/pkg/errors"
)

// Variable names are identifiers, so they can be referenced as "$name".
var identifierPattern = regexp.MustCompile(`^\w+$`)

// Syntax of a pipeline document.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
	HCL  Format = "hcl"
)

// Pipeline document.
type Pipeline struct {
	StrictCommands bool       `json:"strict_commands,omitempty" hcl:"strict_commands,optional"`
	Variables      []Variable `json:"variables,omitempty" hcl:"variable,block"`
	Services       []Service  `json:"services" required:"true" hcl:"service,block"`

	_ struct{} `additionalProperties:"false"`
}

// Variable declaration.
type Variable struct {
	Name    string `json:"name" required:"true" minLength:"1" hcl:"name,label"`
	Value   string `json:"value" required:"true" hcl:"value"`
	Export  bool   `json:"export,omitempty" hcl:"export,optional"`
	Command bool   `json:"command,omitempty" hcl:"command,optional"`

	_ struct{} `additionalProperties:"false"`
}

// Service declaration.
type Service struct {
	Name      string            `json:"name" required:"true" minLength:"1" hcl:"name,label"`
	Args      map[string]string `json:"args,omitempty" hcl:"args,optional"`
	WithPrint bool              `json:"with_print,omitempty" hcl:"with_print,optional"`
	AsRoot    bool              `json:"as_root,omitempty" hcl:"as_root,optional"`
	Skip      bool              `json:"skip,omitempty" hcl:"skip,optional"`
	Capture   string            `json:"capture,omitempty" hcl:"capture,optional"`
	Variables []Variable        `json:"variables,omitempty" hcl:"variable,block"`

	_ struct{} `additionalProperties:"false"`
}

// Returns the document format implied by a file extension.
func FormatOf(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".hcl":
		return HCL, nil
	}
	return "", errors.Wrapf(ErrInvalidConfig, "unsupported file extension %q", filepath.Ext(filename))
}

// Reads and parses a pipeline document, choosing the syntax from the file
// extension.
func ParseFile(filename string) (*Pipeline, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}

	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %q", filename)
	}

	return Parse(bs, format, filename)
}

// Parses and validates a pipeline document. filename is only used in
// diagnostics.
func Parse(bs []byte, format Format, filename string) (*Pipeline, error) {
	var (
		p   *Pipeline
		err error
	)

	switch format {
	case YAML, JSON:
		p, err = parseYAML(bs)
	case HCL:
		p, err = parseHCL(bs, filename)
	default:
		err = errors.Wrapf(ErrInvalidConfig, "unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// JSON is a subset of YAML, so both go through the same decoder.
func parseYAML(bs []byte) (*Pipeline, error) {
	if err := ValidateSchema(bs); err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err.Error())
	}

	var p Pipeline
	if err := yaml.NewDecoder(bytes.NewReader(bs), yaml.DisallowUnknownField()).Decode(&p); err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "failed to decode: %v", err)
	}
	return &p, nil
}

func parseHCL(bs []byte, filename string) (*Pipeline, error) {
	file, diags := hclparse.NewParser().ParseHCL(bs, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(ErrInvalidConfig, "failed to parse HCL file %s: %s", filename, diags.Error())
	}

	var p Pipeline
	if diags := gohcl.DecodeBody(file.Body, nil, &p); diags.HasErrors() {
		return nil, errors.Wrapf(ErrInvalidConfig, "failed to decode HCL file %s: %s", filename, diags.Error())
	}
	return &p, nil
}

// Checks what the schema cannot express: service names come from a closed
// set, and variable and capture names are identifiers. An empty service list
// is valid and runs nothing.
func (p *Pipeline) Validate() error {
	if err := validateVariables("variables", p.Variables); err != nil {
		return err
	}

	for i, s := range p.Services {
		if _, err := service.ParseName(s.Name); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "services[%d]: %v", i, err)
		}
		if s.Capture != "" && !identifierPattern.MatchString(s.Capture) {
			return errors.Wrapf(ErrInvalidConfig, "services[%d]: capture %q is not an identifier", i, s.Capture)
		}
		if err := validateVariables(fmt.Sprintf("services[%d].variables", i), s.Variables); err != nil {
			return err
		}
	}
	return nil
}

func validateVariables(where string, vars []Variable) error {
	for i, v := range vars {
		if !identifierPattern.MatchString(v.Name) {
			return errors.Wrapf(ErrInvalidConfig, "%s[%d]: name %q is not an identifier", where, i, v.Name)
		}
	}
	return nil
}

// Converts the document into an executable task.
func (p *Pipeline) Task() (*pipeline.Task, error) {
	task := &pipeline.Task{
		Variables: convertVariables(p.Variables),
		Services:  make([]*service.Service, 0, len(p.Services)),
		Policy:    variable.Lenient,
	}
	if p.StrictCommands {
		task.Policy = variable.Strict
	}

	for _, s := range p.Services {
		name, err := service.ParseName(s.Name)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidConfig, err.Error())
		}
		task.Services = append(task.Services, &service.Service{
			Name:      name,
			Args:      s.Args,
			WithPrint: s.WithPrint,
			AsRoot:    s.AsRoot,
			Skip:      s.Skip,
			Capture:   s.Capture,
			Variables: convertVariables(s.Variables),
		})
	}
	return task, nil
}

func convertVariables(vars []Variable) []variable.Variable {
	out := make([]variable.Variable, 0, len(vars))
	for _, v := range vars {
		out = append(out, variable.Variable{
			Name:    v.Name,
			Value:   v.Value,
			Export:  v.Export,
			Command: v.Command,
		})
	}
	return out
}
