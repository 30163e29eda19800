package main

import (
	"github.com/KaramelBytes/tabcheck/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; TABCHECK_* variables may also come from the environment.
	_ = godotenv.Load()
	cmd.Execute()
}
