// The noctlm command runs transaction-level Network-on-Chip simulations
// from the command line.
package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// A .env file can carry defaults such as NOCTLM_DB, NOCTLM_LOG, and
	// NOCTLM_MONITOR_PORT. A missing file is fine.
	_ = godotenv.Load()

	Execute()
}
