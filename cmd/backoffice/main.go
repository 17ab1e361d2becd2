package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/memberwd/backoffice/internal/cli"
)

func main() {
	err := cli.Execute(os.Args[1:])
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "error:", err)

	if errors.Is(err, cli.ErrUsage) {
		os.Exit(2)
	}

	os.Exit(1)
}
