// Command simstat generates pseudorandom samples and runs statistical tests
// on them.
package main

import (
	"os"
)

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := a.rootCmd().Execute(); err != nil {
		a.log.Error().Err(err).Msg("simstat failed")
		os.Exit(1)
	}
}
