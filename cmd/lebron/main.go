package main

import "github.com/shawn0818/lebron-bot/internal/cli"

func main() {
	cli.Execute()
}
