package main

import (
	"context"
	"os"

	"go.riyazali.net/sqlite-collate/internal/cli"
)

func main() { os.Exit(cli.Execute(context.Background())) }
