package main

import "github.com/theirongolddev/caltrack/cmd"

func main() {
	cmd.Execute()
}
