package main

import (
	"context"

	"basegov/cmd/basegov-cli/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
