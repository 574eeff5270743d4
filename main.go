package main

import (
	"github.com/ceejbot/modcache/cmd"
)

func main() {
	cmd.Execute()
}
