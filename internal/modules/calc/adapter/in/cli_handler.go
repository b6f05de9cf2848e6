package in

import (
	"factoryerp/internal/modules/calc/dto"
	calcin "factoryerp/internal/modules/calc/port/in"
)

type CLIHandler struct {
	usecase calcin.Usecase
}

func NewCLIHandler(usecase calcin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Overtime(actual, target string) string {
	return h.usecase.Overtime(dto.OvertimeInput{Actual: actual, Target: target}).Value
}

func (h CLIHandler) Wastage(input, output string) string {
	return h.usecase.Wastage(dto.WastageInput{InputMaterial: input, OutputMaterial: output}).Value
}
