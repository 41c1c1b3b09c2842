package main

import (
	"os"

	"hotel_chat/cmd/chat/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
