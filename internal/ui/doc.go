// Package ui implements the Orca desktop interface: a single-download
// shell with URL input, download options, live progress and an inline
// preview pane for the finished file.
package ui
