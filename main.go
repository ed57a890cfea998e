package main

import (
	cmd "github.com/nerview/nerview/cmd/nerview"
)

func main() {
	cmd.Execute()
}
