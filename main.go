package main

import "cafe-ops-system.com/cafe-ops-system/cmd"

func main() {
	cmd.Execute()
}
