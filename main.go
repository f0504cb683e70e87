package main

import (
	"os"
)

func main() {
	code, err := run(os.Args[1:], OSEnviron, os.Stdout, os.Stderr)
	if err != nil {
		os.Stderr.WriteString("pkgconf: " + err.Error() + "\n")
	}
	os.Exit(code)
}
