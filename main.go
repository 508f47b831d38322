package main

import "github.com/fbeckert/jellystream/cmd"

func main() {
	cmd.Execute()
}
