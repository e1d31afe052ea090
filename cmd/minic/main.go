package main

import (
	"os"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	err := Execute()
	if err != nil {
		os.Exit(1)
	}
}
