package enum

// ClientRole describes how a client participated in a transaction:
// the payer settles the bill, included clients were served on the same visit.
type ClientRole string

const (
	ClientRolePayer    ClientRole = "payer"
	ClientRoleIncluded ClientRole = "included"
)

func (r ClientRole) IsValid() bool {
	return r == ClientRolePayer || r == ClientRoleIncluded
}

func (r ClientRole) String() string {
	return string(r)
}
