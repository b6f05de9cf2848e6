package dto

type SessionOutput struct {
	UserID    string
	Email     string
	Role      string
	Token     string
	Anonymous bool
}

type StoreInput struct {
	Token    string
	UserJSON string
	Role     string
}
