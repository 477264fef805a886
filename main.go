package main

import "github.com/MANRAF04/uni-schedule/cmd"

func main() {
	cmd.Execute()
}
