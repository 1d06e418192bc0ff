package request

import (
	"strings"

	"food-delivery-api/internal/domain/outlet"
	"food-delivery-api/internal/pkg/patch"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/queries"
)

type HoursRequest struct {
	Opens  string `json:"opens" binding:"required"`
	Closes string `json:"closes" binding:"required"`
}

func (r HoursRequest) ToDomain() outlet.Hours {
	return outlet.Hours{Opens: strings.TrimSpace(r.Opens), Closes: strings.TrimSpace(r.Closes)}
}

type CreateOutletRequest struct {
	Name     string        `json:"name" binding:"required,max=100"`
	Code     string        `json:"code" binding:"max=20"`
	City     string        `json:"city" binding:"max=100"`
	Phone    string        `json:"phone" binding:"max=20"`
	Hours    *HoursRequest `json:"hours"`
	IsActive *bool         `json:"isActive"`
}

func (r CreateOutletRequest) ToInput() commands.CreateOutletInput {
	in := commands.CreateOutletInput{
		Name:     r.Name,
		Code:     r.Code,
		City:     r.City,
		Phone:    r.Phone,
		IsActive: r.IsActive,
	}
	if r.Hours != nil {
		h := r.Hours.ToDomain()
		in.Hours = &h
	}
	return in
}

// UpdateOutletRequest is a PATCH.
type UpdateOutletRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Code     *string `json:"code" binding:"omitempty,max=20"`
	City     *string `json:"city" binding:"omitempty,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	IsActive *bool   `json:"isActive"`

	// null clears the opening hours
	Hours patch.Nullable[HoursRequest] `json:"hours" swaggertype:"object"`
}

func (r UpdateOutletRequest) ToInput() commands.UpdateOutletInput {
	return commands.UpdateOutletInput{
		Name:     r.Name,
		Code:     r.Code,
		City:     r.City,
		Phone:    r.Phone,
		IsActive: r.IsActive,
		Hours:    patch.Map(r.Hours, HoursRequest.ToDomain),
	}
}

type OutletListQuery struct {
	City            string `form:"city" binding:"max=100"`
	Q               string `form:"q" binding:"max=100"`
	IncludeInactive bool   `form:"includeInactive"`
	PageQuery
}

func (q OutletListQuery) ToFilter() queries.OutletFilter {
	return queries.OutletFilter{
		City:            strings.TrimSpace(q.City),
		Query:           strings.TrimSpace(q.Q),
		IncludeInactive: q.IncludeInactive,
		PageRequest:     q.ToPage(),
	}
}
