package main

import "github.com/kessler/assist/cmd"

func main() {
	cmd.Execute()
}
