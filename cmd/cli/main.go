// Fend Sentry - Application Log Health Checks
//
// Fend Sentry reads application logs from local files, SSH hosts, or docker
// containers, groups recurring errors by signature, and reports health.
package main

import (
	"os"

	"github.com/fendlabs/fend-sentry/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
