// Package sequel holds build metadata for the sequel CLI.
package sequel

// Version is the released version of the sequel CLI.
const Version = "0.3.0"
