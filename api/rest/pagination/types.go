package pagination

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds the limit/offset query parameters of list endpoints. Out of
// range values are rejected by binding instead of being clamped.
type Params struct {
	Limit  int `form:"limit" binding:"omitempty,gte=1,lte=100"`
	Offset int `form:"offset" binding:"omitempty,gte=0"`
}

// returns p with DefaultLimit applied when no limit was given
func (p Params) WithDefaults() Params {
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}

	return p
}

// Meta holds pagination metadata for response
type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

func NewMeta(params Params, total int) Meta {
	return Meta{
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
		HasMore: params.Offset+params.Limit < total,
	}
}
