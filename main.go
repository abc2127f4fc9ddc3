package main

import (
	"os"

	"github.com/pennassurancesoftware/tutum-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
