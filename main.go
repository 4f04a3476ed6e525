package main

import (
	"github.com/byxorna/shelf/cmd"
)

func main() {
	cmd.Execute()
}
