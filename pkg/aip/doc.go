// Package aip is the client SDK for Agent Identity Protocol registries.
// It provides the validated agent-profile data model, an HTTP client with
// bounded retry and pagination handling, batch register/delete helpers,
// and YAML/JSON profile file loading.
package aip
