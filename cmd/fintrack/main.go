// Command fintrack runs maintenance tasks against the tracker database:
// migrations, spreadsheet imports, period reports and local auth tokens.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
