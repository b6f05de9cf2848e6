package in

import "factoryerp/internal/modules/calc/dto"

type Usecase interface {
	Overtime(input dto.OvertimeInput) dto.ResultOutput
	Wastage(input dto.WastageInput) dto.ResultOutput
}
