package main

import "github.com/bharathsurabhi2-png/antitheft-sentry/cmd/mat-sentry/cmd"

func main() {
	cmd.Execute()
}
