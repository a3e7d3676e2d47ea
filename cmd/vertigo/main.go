// Package main is the entry point for the vertigo server and its build-time
// tooling. It loads configuration, wires the content source, and exposes
// the serve, params, sitemap, import and migrate commands.
package main

import (
	"fmt"
	"os"
)

func main() {
	c := &cli{}
	if err := c.execute(c.command()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
