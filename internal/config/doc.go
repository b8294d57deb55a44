// Package config loads pipeline documents.
//
// A pipeline document lists the task variables and the services to run.
// It may be written in YAML or JSON (".yaml", ".yml", ".json"), which are
// validated against the embedded JSON schema before decoding, or in HCL
// (".hcl"). Every document is then checked semantically: service names must
// belong to the known set and variable names must be identifiers.
//
// YAML example:
//
//	strict_commands: false
//	variables:
//	  - name: BRANCH
//	    value: sisyphus
//	    export: true
//	services:
//	  - name: buildsum
//	    args: {branch: $BRANCH, storage: /srv/builds}
//	    with_print: true
//
// HCL example:
//
//	variable "BRANCH" {
//	  value  = "sisyphus"
//	  export = true
//	}
//
//	service "buildsum" {
//	  args       = { branch = "$BRANCH", storage = "/srv/builds" }
//	  with_print = true
//	}
//
// Example usage:
//
//	p, err := config.ParseFile("pipeline.yaml")
//	if err != nil {
//	    return err
//	}
//	task, err := p.Task()
package config
