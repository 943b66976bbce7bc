// Edgar analytics: reporting API and dashboard over the Edgar exam database.
//
// Usage:
//
//	edgar serve
//	edgar seed
//	edgar report results 1 2 1
package main

import (
	"fmt"
	"os"

	"github.com/edgar-analytics/edgar-dashboard/cmd/edgar/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
