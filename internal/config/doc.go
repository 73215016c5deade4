// Package config provides configuration loading, merging, and validation
// for the study-marks server and client.
//
// Configuration is assembled from several sources. A field keeps the value
// of the first source that sets it, in this order:
//  1. Environment variables
//  2. Command-line flags (server only; the client CLI owns its own flags)
//  3. JSON config file
//  4. Built-in defaults
//
// The entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
