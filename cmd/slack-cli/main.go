package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sblaisot/slack-cli/app/send"
)

func main() {

	ctx := context.Background()

	err := send.Run(ctx)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
