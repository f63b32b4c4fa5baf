package main

import "github.com/Andbal23/dynamic-music-pill/internal/cli"

func main() {
	cli.Execute()
}
