// Package harness runs a single sort inside a dedicated child process and
// times it from the parent.
package harness

// ChildReport is the JSON document a child writes to stdout after sorting.
type ChildReport struct {
	Algorithm string `json:"algorithm"`
	Elements  int    `json:"elements"`
	Verified  bool   `json:"verified"`
}
