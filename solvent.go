// Package solvent supervises long-running numerical solver processes,
// streams their console output live, and condenses captured logs into
// bounded digests suitable for LLM-backed analysis.
package solvent

// Version is the current solvent release.
const Version = "v0.3.0"
