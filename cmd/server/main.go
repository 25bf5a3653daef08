package main

import (
	"github.com/accountweb/accountweb/internal/cli"
)

func main() {
	cli.Execute()
}
