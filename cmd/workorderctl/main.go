// Command workorderctl operates the work-order engine from a shell: schema
// migrations, one-off updates and record inspection against the configured store.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
