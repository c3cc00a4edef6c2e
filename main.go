package main

import "calbank/cmd"

func main() {
	cmd.Execute()
}
