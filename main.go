// Copyright © 2025 The lispindent authors

package main

import "github.com/luthersystems/lispindent/cmd"

func main() {
	cmd.Execute()
}
