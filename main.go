package main

import "counter-sync/cmd"

func main() {
	cmd.Execute()
}
