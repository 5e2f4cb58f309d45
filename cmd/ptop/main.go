package main

import (
	"os"

	"ptop/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
