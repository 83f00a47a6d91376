// Package preview plays downloaded media files through an ffplay child
// process, with duration probing and poster frames provided by ffprobe and
// ffmpeg.
package preview
