package main

import (
	"fmt"
	"os"

	"wallcraft/internal"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	err := internal.Bootstrap()
	if err != nil {
		fmt.Fprint(os.Stderr, "Bootstrap error: "+err.Error())
		os.Exit(1)
	}
}
