package main

import "github.com/saadjs/bump-cli/cmd/bump"

func main() {
	bump.Execute()
}
