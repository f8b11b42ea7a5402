package main

import (
	"flag"
	"fmt"
	"os"
)

const version = "0.1.0"

var versionOption = flag.Bool("version", false, "mockgenc version")

func main() {
	flag.Parse()

	if *versionOption {
		fmt.Printf("mockgenc v%s", version)

		return
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
