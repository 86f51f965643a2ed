package main

import "github.com/josephlewis42/ampsh/cmd"

func main() {
	cmd.Execute()
}
