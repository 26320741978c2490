package main

import "github.com/rail44/adminui/cmd"

func main() {
	cmd.Execute()
}
