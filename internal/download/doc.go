package download

// Package download implements the download pipeline built on top of the
// yt-dlp CLI. It owns the single-download lifecycle (idle/running/terminal),
// builds the command line from user options, and relays parsed progress to
// the UI over channels.
