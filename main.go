// Command heartlines is a terminal budgeting tool built around the 50/30/20 rule.
package main

import "github.com/theirongolddev/heartlines/cmd"

func main() {
	cmd.Execute()
}
