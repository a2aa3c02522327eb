package main

import "gemini-rag/internal/cli"

func main() {
	cli.Execute()
}
