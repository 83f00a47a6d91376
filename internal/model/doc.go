package model

// Package model defines domain data structures used across the app: download
// requests and options, progress updates, conversion tasks, and the lifecycle
// state enum. Structures are designed for direct use in the UI and explicit
// state transitions.
