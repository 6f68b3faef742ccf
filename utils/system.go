// govdir/utils/system.go
package utils

import "time"

// GetTime returns the current time in UTC. All timestamps the service
// stores or compares go through here.
func GetTime() time.Time {
	return time.Now().UTC()
}

// GetSQLTime formats the current time the way the schema's DATETIME
// columns expect it.
func GetSQLTime() string {
	return GetTime().Format("2006-01-02 15:04:05")
}
