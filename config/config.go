// govdir/config/config.go
package config

const (
	AppVersion = "1.2.0"

	// Form & Review Limits
	MaxTitleLen       = 150
	MaxURLLen         = 500
	MaxDescriptionLen = 2000
	MaxAuthorNameLen  = 75
	MaxContentLen     = 4000

	MinPasswordLen = 8

	// Defaults overridable by file or environment
	DefaultPort       = "8080"
	DefaultDBPath     = "./govdir.db?_journal_mode=WAL&_foreign_keys=on"
	DefaultBackupDir  = "./backups"
	DefaultSessionTTL = "24h"
)

// Categories is the suggestion list offered when submitting a site. It is not
// enforced on insert: the category column stays free-form, and the public
// category list is always derived from the rows actually in the directory.
var Categories = []string{
	"General Services",
	"Citizen Engagement",
	"Leadership",
	"Security & Administration",
	"Finance & Economics",
	"Foreign Affairs",
	"Defence",
	"Transportation",
	"Health & Welfare",
	"Education",
	"Agriculture",
	"Technology",
	"Environment",
	"Employment",
	"Social Welfare",
	"Urban Development",
	"Energy",
	"Data & Analytics",
}
