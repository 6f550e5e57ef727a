// Package main is the entry point for the voicetranslator CLI.
//
// Usage:
//
//	voicetranslator [flags] <command>
//
// Commands:
//
//	serve    - translation proxy on :3001
//	chat     - terminal capture loop writing the conversation log
//	history  - print the conversation log
//	clear    - delete the conversation log
package main

import (
	"fmt"
	"os"

	"github.com/pricofy/voice-translator/cmd/voicetranslator/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
