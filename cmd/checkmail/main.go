// Package main is the entry point for the blocked-mail check.
package main

import "check-postfix-blocked/cmd/checkmail/cmd"

func main() {
	cmd.Execute()
}
