package main

import (
	"os"

	"github.com/open-unicorn/uws-sidebar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
