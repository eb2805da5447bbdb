package main

import (
	"github.com/beetlebugorg/mif/internal/cli"
)

func main() {
	cli.Execute()
}
