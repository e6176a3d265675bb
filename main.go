package main

import (
	"os"

	"github.com/product-reviews/product-reviews/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
