package main

import "mobisync/cmd/syncctl/cmd"

func main() {
	cmd.Execute()
}
