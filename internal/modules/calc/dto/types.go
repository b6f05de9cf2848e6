package dto

type OvertimeInput struct {
	Actual string
	Target string
}

type WastageInput struct {
	InputMaterial  string
	OutputMaterial string
}

type ResultOutput struct {
	Value string
}
