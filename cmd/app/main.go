package main

import "dispatchsim/cmd"

func main() {
	cmd.Execute()
}
