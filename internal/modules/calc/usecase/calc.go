package usecase

import (
	"factoryerp/internal/modules/calc/domain"
	"factoryerp/internal/modules/calc/dto"
	calcin "factoryerp/internal/modules/calc/port/in"
)

type Interactor struct{}

func NewInteractor() calcin.Usecase {
	return Interactor{}
}

func (Interactor) Overtime(input dto.OvertimeInput) dto.ResultOutput {
	return dto.ResultOutput{Value: domain.OvertimeHoursFromInput(input.Actual, input.Target)}
}

func (Interactor) Wastage(input dto.WastageInput) dto.ResultOutput {
	return dto.ResultOutput{Value: domain.WastageFromInput(input.InputMaterial, input.OutputMaterial)}
}
