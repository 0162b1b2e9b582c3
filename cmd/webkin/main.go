// Command webkin is a recursive web crawler: give it seed hosts and it
// crawls each one to exhaustion, promoting related hosts (sibling
// subdomains) it finds along the way to new crawl targets.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
