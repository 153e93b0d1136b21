package main

import (
	"os"

	"github.com/rapidsai/cufile-go/cmd/cufile-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
