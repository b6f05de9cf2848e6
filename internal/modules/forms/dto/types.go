package dto

type FieldOutput struct {
	Name     string
	Label    string
	Required bool
	Readonly bool
	Multi    bool
	Value    string
	Selected []string
}

type SubmitInput struct {
	// Token authorizes the request; empty submits anonymously.
	Token string
}

type SubmitOutput struct {
	Kind    string
	State   string
	Level   string
	Message string
}
