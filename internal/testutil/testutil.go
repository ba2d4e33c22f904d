// Package testutil holds helpers shared by the test suites.
package testutil

import "strings"

// JoinLF joins multiple strings with LF line endings and appends a trailing
// newline. Use this to construct expected multi-line encoder output with
// explicit line endings.
//
// Example:
//
//	want := testutil.JoinLF(
//		"replicas: 1",
//		"image:",
//	) // -> "replicas: 1\nimage:\n"
func JoinLF(ss ...string) string {
	var sb strings.Builder

	for _, s := range ss {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}

	return sb.String()
}
