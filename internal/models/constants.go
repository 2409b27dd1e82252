package models

// DateLayout is the layout used for dates in CSV output and CLI flags.
const DateLayout = "2006-01-02"

// File permissions
const (
	PermissionRuleFile  = 0644
	PermissionDirectory = 0750
)
