// Package configs provides the embedded configuration template for
// userpeek.
//
// The template is embedded at build time with //go:embed so it ships
// with every distribution. It is used by 'userpeek config init' to
// create the user config at ~/.config/userpeek/config.yaml.
//
// Configuration hierarchy (see internal/config/config.go Load()):
//  1. Hardcoded defaults (internal/config/config.go NewConfig())
//  2. User config (~/.config/userpeek/config.yaml)
//  3. Environment variables (USERPEEK_*)
//
// To modify the template, edit the .yaml file in this directory and
// rebuild.
package configs

import _ "embed"

// UserConfigTemplate is the commented template for user configuration.
// Created by: `userpeek config init` at ~/.config/userpeek/config.yaml
//
//go:embed user-config.example.yaml
var UserConfigTemplate string
