package main

import "github.com/papapumpkin/furlong/cmd"

func main() {
	cmd.Execute()
}
