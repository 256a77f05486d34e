package main

import "github.com/kozaktomas/lost-found/cmd"

func main() {
	cmd.Execute()
}
