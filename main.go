package main

import "resize/cmd"

func main() {
	cmd.Execute()
}
