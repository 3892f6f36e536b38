package main

import "github.com/PWbio/gliacloud-video-highlight-tool/internal/adapters/cli"

func main() {
	cli.Execute()
}
