// Command assetctl queries the /asset API, renders distributions as charts
// and exports them as spreadsheets.
package main

import (
	"os"

	"github.com/okian/assetlens/pkg/logger"
)

func main() {
	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		_ = logger.Sync()
		os.Exit(1)
	}
}
