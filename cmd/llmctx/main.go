package main

import "os"

func main() {
	stdinIsTTY := false
	if fi, err := os.Stdin.Stat(); err == nil {
		stdinIsTTY = fi.Mode()&os.ModeCharDevice != 0
	}
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, stdinIsTTY))
}
