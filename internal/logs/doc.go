// Package logs reads the run log that tagging mirrors into the configured log
// directory. It backs `jlptag logs`, including follow mode, with bounded
// memory: trailing reads keep only the requested number of lines, and follow
// mode polls forward from a byte offset instead of rescanning the file.
package logs
