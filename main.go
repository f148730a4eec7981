// Package main is the entry point for the teamstats CLI tool, which imports a
// team's season workbook and reports match, player and tournament statistics.
package main

import "github.com/pable/go-team-stats/cmd"

func main() {
	cmd.Execute()
}
