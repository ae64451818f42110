// Copyright © 2026 The iota authors

// Command iotac checks iota programs.
package main

import "github.com/iotalang/iota/cmd"

func main() {
	cmd.Execute()
}
