package main

import "github.com/Apurer/souvenir-registry/internal/cli"

func main() {
	cli.Main()
}
