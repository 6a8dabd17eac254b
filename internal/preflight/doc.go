// Package preflight provides readiness checks for the filesystem inputs a
// tagging run depends on.
//
// These checks run in two contexts:
//   - The tag command calls RunAll before opening the database. If any check
//     fails, the run aborts before a single row is read.
//   - The "jlptag check" command uses the same results to display input
//     health without running anything.
package preflight
