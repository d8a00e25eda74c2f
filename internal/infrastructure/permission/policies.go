package permission

// Resources.
const (
	ResourceTicket     = "ticket"
	ResourceBreakdown  = "breakdown"
	ResourceCalendar   = "calendar"
	ResourceMachine    = "machine"
	ResourceInstrument = "instrument"
	ResourceUser       = "user"
	ResourceEvents     = "events"
)

// Actions.
const (
	ActionRead     = "read"
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionClose    = "close"
	ActionSchedule = "schedule"
)

// DefaultPolicies grant Viewer read access to tickets, User the daily
// ticket work and Admin everything.
var DefaultPolicies = [][]string{
	{"Viewer", ResourceTicket, ActionRead},
	{"Viewer", ResourceCalendar, ActionRead},
	{"Viewer", ResourceEvents, ActionRead},

	{"User", ResourceTicket, ActionClose},
	{"User", ResourceBreakdown, ActionCreate},
	{"User", ResourceMachine, ActionRead},
	{"User", ResourceInstrument, ActionRead},

	{"Admin", "*", "*"},
}

// DefaultRoleInheritance lists (role, inherited role) pairs.
var DefaultRoleInheritance = [][]string{
	{"User", "Viewer"},
	{"Admin", "User"},
}
