package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hupe1980/refget/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "refget:", err)
		os.Exit(1)
	}
}
