// jobsift - Batch Job Log Diagnosis Tool
//
// jobsift extracts failure causes, counters, and status messages from the
// logs a distributed batch job leaves behind.
package main

import (
	"os"

	"jobsift/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
