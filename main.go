// main is the entry point of the cvss2 CLI.
package main

import (
	"github.com/huangsam/cvss2/cmd"
	"github.com/huangsam/cvss2/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("cvss2 failed", err)
	}
}
