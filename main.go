package main

import "loot-restrictions/cmd"

func main() {
	cmd.Execute()
}
