package main

import "prtgctl/cmd"

func main() {
	cmd.Execute()
}
