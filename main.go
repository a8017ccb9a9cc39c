package main

import (
	"os"

	"github.com/pzillo/landing/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
