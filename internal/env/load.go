package env

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Load reads KEY=VALUE lines from path (e.g. ".env") into the process environment.
// Variables already set in the environment win over the file.
// The file may be missing; that is not an error.
func Load(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}
