package response

import (
	"food-delivery-api/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type PageResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func FromPage[S, D any](p *queries.Page[S], conv func(S) D) PageResponse[D] {
	items := make([]D, len(p.Items))
	for i, it := range p.Items {
		items[i] = conv(it)
	}
	return PageResponse[D]{Items: items, Total: p.Total, Page: p.Page, Limit: p.Limit}
}

// copyFlat fills a response struct from a view with the same field names.
// copier only fails on mismatched kinds, which the response types rule out.
func copyFlat[D any](src any) *D {
	dst := new(D)
	if err := copier.Copy(dst, src); err != nil {
		panic("response: " + err.Error())
	}
	return dst
}
