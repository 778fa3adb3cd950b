package model

// Role is the closed set of user roles.
type Role uint8

const (
	RoleUnspecified Role = iota
	RoleAdmin
	RoleSales
	RoleInventory
	RoleCashier
)

var roleNames = []string{"", "Admin", "Sales", "Inventory", "Cashier"}

// Roles lists every assignable role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleSales, RoleInventory, RoleCashier}
}

// ParseRole parses a role name such as "Admin".
func ParseRole(s string) (Role, error) {
	return parseEnum[Role](roleNames, "role", s)
}

func (r Role) String() string {
	return enumName(roleNames, "Role", r)
}

func (r Role) Validate() error {
	return validateEnum(roleNames, "role", r)
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	v, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
