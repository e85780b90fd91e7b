// Package proctor holds module-level metadata shared by the CLI and
// the MCP server.
package proctor

// Version is the proctor release version.
const Version = "0.1.0"
