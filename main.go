package main

import (
	"os"

	"github.com/josephlewis42/hsh/cmd"
)

func main() {
	// Statuses outside 0-255 wrap the way they would through exit(3).
	os.Exit(cmd.Execute() & 0xff)
}
