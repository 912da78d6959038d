package entity

// Principal is whoever makes the request. The zero value is anonymous.
type Principal struct {
	UserID   string
	Username string
}

var Anonymous = Principal{}

func (p Principal) IsAuthenticated() bool {
	return p.UserID != ""
}
