package demo

// Demo account roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Account is a demo login shown on the login page of demo deployments.
// The values are plaintext on purpose: demo data is simulated.
type Account struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Hint     string `json:"hint"`
}

var accounts = map[string]Account{
	RoleAdmin: {
		Email:    "admin@demo.aether.io",
		Password: "demo123",
		Hint:     "管理员账号",
	},
	RoleUser: {
		Email:    "user@demo.aether.io",
		Password: "demo123",
		Hint:     "普通用户",
	},
}

// Accounts returns the demo accounts keyed by role. The map is a copy.
func Accounts() map[string]Account {
	out := make(map[string]Account, len(accounts))
	for role, acc := range accounts {
		out[role] = acc
	}
	return out
}

// LookupAccount returns the demo account for role.
func LookupAccount(role string) (Account, bool) {
	acc, ok := accounts[role]
	return acc, ok
}

// Roles returns the demo roles, admin first.
func Roles() []string {
	return []string{RoleAdmin, RoleUser}
}
