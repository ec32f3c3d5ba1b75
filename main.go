package main

import "github.com/suderio/netdust/cmd"

func main() {
	cmd.Execute()
}
