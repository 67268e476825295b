package main

import (
	"github.com/juiceinc/jbwatch/internal/command"
)

func main() {
	command.Execute()
}
