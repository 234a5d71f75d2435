package main

import "github.com/nfrund/panel/cmd/panelctl/cmd"

func main() {
	cmd.Execute()
}
