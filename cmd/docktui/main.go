package main

import (
	"github.com/dialmaster/docktui/internal/cli"
)

func main() {
	cli.Execute()
}
