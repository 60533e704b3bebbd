package main

import "github.com/MrSnakeDoc/sitehub/internal/cli"

func main() {
	cli.Execute()
}
