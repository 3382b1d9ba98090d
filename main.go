package main

import "concert-pass/cmd"

func main() {
	cmd.Execute()
}
