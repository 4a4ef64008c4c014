// intentd is an entity-recognition service for live intent
// highlighting over CPG analytics queries.
package main

import (
	"os"

	"github.com/corey/intentd/cmd/intentd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
