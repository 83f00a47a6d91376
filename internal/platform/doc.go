package platform

// Package platform contains OS/platform integration and external tooling glue:
// the child-process runner, yt-dlp output parsing, playlist probing, filesystem
// helpers, and OS open/reveal.
