package main

import (
	"github.com/tinybird-labs/tb-migrate/cmd"
)

func main() {
	cmd.Execute()
}
