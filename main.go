// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"os/user"

	"quorlin/internal/config"
	"quorlin/repl"
)

func main() {
	cfg := config.Default()
	cfg.ApplyEnv()
	level := flag.Int("O", cfg.Optimizer.Level, "optimization level (0-3)")
	flag.Parse()

	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	fmt.Printf("Welcome to the Quorlin IR optimizer, %s!\n", currentUser.Username)
	fmt.Printf("Enter a module and finish it with a blank line (-O%d).\n", *level)
	repl.Start(os.Stdin, os.Stdout, *level)
}
