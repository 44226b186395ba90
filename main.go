package main

import "github.com/fs0414/csv-nodeid-decoder/cmd"

func main() {
	cmd.Execute()
}
