// Package main hosts the recit CLI.
//
// The Cobra command tree reports the detected display layout, estimates output
// sizes, prints the ffmpeg invocation a recording would use, checks for the
// external tools the recorder shells out to, and follows monitor hotplug
// changes. Configuration and logging are resolved once in commandContext so
// subcommands only deal with presentation.
package main
