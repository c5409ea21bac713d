package main

import (
	"fmt"
	"os"

	"saucedemo_automation/presentation/terminal"
)

func main() {
	termInterface, err := terminal.NewTerminalInterface(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	err = termInterface.Run()
	if closeErr := termInterface.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Failed to close browser: %v\n", closeErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
