package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/preethi-chalasani/portfolio/cmd"
)

func main() {
	cmd.Execute()
}
