package main

import "github.com/information-sharing-networks/blog-demo/internal/cli"

func main() {
	cli.Execute()
}
