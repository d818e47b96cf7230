package main

import "github.com/joy095/propertyops/cmd"

func main() {
	cmd.Execute()
}
