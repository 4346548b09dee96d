package main

import "github.com/danielrhuynh/cs-446-ece-452/internal/cli"

func main() {
	cli.Execute()
}
