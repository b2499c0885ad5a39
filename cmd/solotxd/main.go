package main

import (
	"fmt"
	"os"

	"github.com/tokenize-x/solomachine-txbuilder/cmd/solotxd/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
