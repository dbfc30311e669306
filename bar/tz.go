package bar

import (
	"fmt"
	"os"
	"time"
)

// Reads a tzfile(5) such as /etc/localtime. Reread on change, unlike
// time.Local which is loaded once per process.
func LoadLocationFile(filename string) (*time.Location, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("tz: %w", err)
	}
	loc, err := time.LoadLocationFromTZData("Local", b)
	if err != nil {
		return nil, fmt.Errorf("tz: %v: %w", filename, err)
	}
	return loc, nil
}
