package main

import "github.com/Ikanga93/ritt-ai-assistant/cmd"

func main() {
	cmd.Execute()
}
