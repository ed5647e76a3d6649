package main

import "nathanbeddoewebdev/dcm/cmd"

func main() {
	cmd.Execute()
}
