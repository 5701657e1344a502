// Command mindctl is the operator CLI: it seeds an admin account and the
// counselor directory, and scores screening answers offline.
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
