package provisioning

type Input struct {
	PUCID        uint64
	FirstName    string
	LastName     string
	Relationship string
	Email        string
	Phone        string

	// ActorID and IP go to the audit row; zero values are allowed.
	ActorID uint64
	IP      string
}

// Result carries the plaintext credentials. They are returned once.
type Result struct {
	ApprovalID   uint64 `json:"approval_id"`
	PUCID        uint64 `json:"pupc_id"`
	VisitorID    uint64 `json:"visitor_id"`
	UserID       uint64 `json:"user_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Relationship string `json:"relationship"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Username     string `json:"username"`
	Password     string `json:"password"`
}
