package redis

import "fmt"

// Key prefix for all roster data
const keyPrefix = "benched"

// rosterKey returns the Redis key holding the roster document
func rosterKey(roster string) string {
	if roster == "" {
		roster = "default"
	}
	return fmt.Sprintf("%s:roster:%s", keyPrefix, roster)
}
