// Package host prepares compiled composition scripts for the host runtime
// that renders them: it resolves the user instruction file, wraps the
// compiled body in the module prologue and epilogue, and writes the result
// next to the script.
package host
