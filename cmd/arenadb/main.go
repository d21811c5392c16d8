package main

import "github.com/tuannm99/arenadb/cmd/arenadb/cmd"

func main() {
	cmd.Execute()
}
