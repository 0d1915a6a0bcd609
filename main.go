package main

import "github.com/frahmantamala/planforge/cmd"

func main() {
	cmd.Execute()
}
