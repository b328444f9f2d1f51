package entity

// Principal es la identidad resuelta de quien hace la petición.
type Principal struct {
	UID       string
	MemberID  string
	CompanyID string
	Role      Role
	Name      string
	Email     string
}
