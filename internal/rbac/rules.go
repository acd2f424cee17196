package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"lesson:view",
		"assess:run",
		"attempt:create",
		"attempt:view-own",
	},
	"teacher": {
		"lesson:create",
		"lesson:view",
		"assess:run",
		"attempt:view-all",
		"events:read",
	},
	"admin": {
		"*", // everything
	},
}
