// Package config defines panel settings and provides helpers to load,
// validate and save them in YAML format.
//
// The Config type holds the storage backend selection, the camera confidence
// threshold, and the sensors to register on first use.
package config
