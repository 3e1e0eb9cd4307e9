package main

import (
	"github.com/glint-vision/chromafind/cmd/chromafind/cmd"
)

func main() {
	cmd.Execute()
}
