package authority

// OutcomeKind is the tri-state result of asking the authority about a token.
type OutcomeKind int

const (
	// Invalid is the zero value so an unset Outcome never grants access.
	Invalid OutcomeKind = iota
	Valid
	Unreachable
)

func (k OutcomeKind) String() string {
	switch k {
	case Valid:
		return "valid"
	case Unreachable:
		return "unreachable"
	default:
		return "invalid"
	}
}

// Outcome is the answer to a validation request.
type Outcome struct {
	Kind OutcomeKind
	// User is set for Valid outcomes when the authority describes the caller.
	User *UserContext
	// Err holds the transport or status error behind a non-Valid outcome.
	Err error
}

// UserContext describes the admin a valid token belongs to.
type UserContext struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Credentials are submitted by the login form.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Summary is the dashboard snapshot of aggregate counts.
type Summary struct {
	Products   int `json:"products"`
	Categories int `json:"categories"`
	Brands     int `json:"brands"`
	Customers  int `json:"customers"`
	Admins     int `json:"admins"`
	Roles      int `json:"roles"`
}

// envelope is the response shape shared by every authority endpoint.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type loginData struct {
	Token string `json:"token"`
}
