package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osforge/osforge/internal/config"
	"github.com/osforge/osforge/internal/service"
	"github.com/osforge/osforge/internal/variable"
)

const pipelineYAML = `
strict_commands: true
variables:
  - name: BRANCH
    value: sisyphus
    export: true
  - name: STORAGE
    value: echo /srv/builds
    command: true
services:
  - name: get-rootfs.sh
    args:
      branch: $BRANCH
    as_root: true
    capture: ROOTFS
  - name: buildsum
    args: {branch: $BRANCH, storage: $STORAGE}
    with_print: true
    skip: true
    variables:
      - {name: LOCAL, value: x}
`

const pipelineJSON = `{
  "strict_commands": true,
  "variables": [
    {"name": "BRANCH", "value": "sisyphus", "export": true},
    {"name": "STORAGE", "value": "echo /srv/builds", "command": true}
  ],
  "services": [
    {"name": "get-rootfs.sh", "args": {"branch": "$BRANCH"}, "as_root": true, "capture": "ROOTFS"},
    {
      "name": "buildsum",
      "args": {"branch": "$BRANCH", "storage": "$STORAGE"},
      "with_print": true,
      "skip": true,
      "variables": [{"name": "LOCAL", "value": "x"}]
    }
  ]
}`

const pipelineHCL = `
strict_commands = true

variable "BRANCH" {
  value  = "sisyphus"
  export = true
}

variable "STORAGE" {
  value   = "echo /srv/builds"
  command = true
}

service "get-rootfs.sh" {
  args    = { branch = "$BRANCH" }
  as_root = true
  capture = "ROOTFS"
}

service "buildsum" {
  args       = { branch = "$BRANCH", storage = "$STORAGE" }
  with_print = true
  skip       = true

  variable "LOCAL" {
    value = "x"
  }
}
`

var want = &config.Pipeline{
	StrictCommands: true,
	Variables: []config.Variable{
		{Name: "BRANCH", Value: "sisyphus", Export: true},
		{Name: "STORAGE", Value: "echo /srv/builds", Command: true},
	},
	Services: []config.Service{
		{Name: "get-rootfs.sh", Args: map[string]string{"branch": "$BRANCH"}, AsRoot: true, Capture: "ROOTFS"},
		{
			Name:      "buildsum",
			Args:      map[string]string{"branch": "$BRANCH", "storage": "$STORAGE"},
			WithPrint: true,
			Skip:      true,
			Variables: []config.Variable{{Name: "LOCAL", Value: "x"}},
		},
	},
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name   string
		format config.Format
		doc    string
	}{
		{"yaml", config.YAML, pipelineYAML},
		{"json", config.JSON, pipelineJSON},
		{"hcl", config.HCL, pipelineHCL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.Parse([]byte(tt.doc), tt.format, "pipeline."+tt.name)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty(), cmpopts.IgnoreUnexported(config.Pipeline{}, config.Variable{}, config.Service{})); diff != "" {
				t.Fatalf("pipeline mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "pipeline.yml")
	require.NoError(t, os.WriteFile(path, []byte(pipelineYAML), 0o644))

	p, err := config.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, p.Services, 2)

	_, err = config.ParseFile(filepath.Join(dir, "pipeline.toml"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.ParseFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name   string
		format config.Format
		doc    string
	}{
		{"not yaml", config.YAML, "services: [\n"},
		{"missing services", config.YAML, "variables: []\n"},
		{"unknown top-level key", config.YAML, "services: [{name: apt}]\nretries: 3\n"},
		{"unknown service key", config.YAML, "services: [{name: apt, timeout: 5}]\n"},
		{"non-string value", config.YAML, "variables: [{name: N, value: 5}]\nservices: [{name: apt}]\n"},
		{"missing value", config.JSON, `{"variables": [{"name": "N"}], "services": [{"name": "apt"}]}`},
		{"unknown service", config.YAML, "services: [{name: buildsum.sh}]\n"},
		{"bad variable name", config.YAML, "variables: [{name: A-B, value: x}]\nservices: [{name: apt}]\n"},
		{"bad service variable name", config.YAML, "services: [{name: apt, variables: [{name: $X, value: x}]}]\n"},
		{"bad capture", config.YAML, "services: [{name: apt, capture: 'a b'}]\n"},
		{"hcl syntax", config.HCL, "service \"apt\" {\n"},
		{"hcl unknown attribute", config.HCL, "service \"apt\" {\n  timeout = 5\n}\n"},
		{"hcl unknown service", config.HCL, "service \"nope\" {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.doc), tt.format, "pipeline")
			require.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestTask(t *testing.T) {
	task, err := want.Task()
	require.NoError(t, err)

	assert.Equal(t, variable.Strict, task.Policy)
	assert.Equal(t, []variable.Variable{
		{Name: "BRANCH", Value: "sisyphus", Export: true},
		{Name: "STORAGE", Value: "echo /srv/builds", Command: true},
	}, task.Variables)

	require.Len(t, task.Services, 2)
	assert.Equal(t, &service.Service{
		Name:      service.GetRootfs,
		Args:      map[string]string{"branch": "$BRANCH"},
		AsRoot:    true,
		Capture:   "ROOTFS",
		Variables: []variable.Variable{},
	}, task.Services[0])
	assert.Equal(t, service.Buildsum, task.Services[1].Name)
	assert.True(t, task.Services[1].Skip)
	assert.Equal(t, []variable.Variable{{Name: "LOCAL", Value: "x"}}, task.Services[1].Variables)
}

func TestTaskLenientByDefault(t *testing.T) {
	p, err := config.Parse([]byte("services: [{name: test-echo}]\n"), config.YAML, "pipeline.yaml")
	require.NoError(t, err)

	task, err := p.Task()
	require.NoError(t, err)
	assert.Equal(t, variable.Lenient, task.Policy)
}

func TestParseEmptyServices(t *testing.T) {
	p, err := config.Parse([]byte("variables: [{name: A, value: x}]\nservices: []\n"), config.YAML, "pipeline.yaml")
	require.NoError(t, err)

	task, err := p.Task()
	require.NoError(t, err)
	assert.Empty(t, task.Services)
}

func TestParseOriginalServiceNames(t *testing.T) {
	p, err := config.Parse([]byte("services: [{name: buildsum.py}, {name: pkgdiff.py}, {name: apt.sh}]\n"), config.YAML, "pipeline.yaml")
	require.NoError(t, err)

	task, err := p.Task()
	require.NoError(t, err)
	require.Len(t, task.Services, 3)
	assert.Equal(t, service.Buildsum, task.Services[0].Name)
	assert.Equal(t, service.Pkgdiff, task.Services[1].Name)
	assert.Equal(t, service.Apt, task.Services[2].Name)
}

func TestReflectSchema(t *testing.T) {
	bs, err := config.ReflectSchema()
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"strict_commands"`)
	assert.Contains(t, string(bs), `"with_print"`)
}
