package catalog

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// PageSize is the fixed number of records per filter page.
const PageSize = 9

// Order selects the sort key of a filter.
type Order string

const (
	OrderDate  Order = "date"
	OrderTitle Order = "title"
	OrderPrice Order = "price"
)

// Filter describes a paged genre/artist query. Empty id sets do not filter.
type Filter struct {
	Genres     []int64
	Artists    []int64
	Order      Order
	Descending bool
	Page       int
}

// Offset returns the index of the first record on the filter's page. Pages
// too far out to address saturate at math.MaxInt.
func (f Filter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	if page-1 > math.MaxInt/PageSize {
		return math.MaxInt
	}
	return (page - 1) * PageSize
}

// ParseIDList parses a required comma separated id list. Any token that is
// not an integer rejects the whole list.
func ParseIDList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: ids is required", ErrValidation)
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid id %q", ErrValidation, part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseFilter reads filter parameters leniently. Unparsable ids are dropped
// and an invalid page becomes the first page.
func ParseFilter(values url.Values) Filter {
	f := Filter{
		Genres:     lenientIDs(values.Get("genres")),
		Artists:    lenientIDs(values.Get("artists")),
		Descending: strings.EqualFold(values.Get("direction"), "desc"),
		Page:       1,
	}
	switch Order(strings.ToLower(values.Get("order"))) {
	case OrderDate:
		f.Order = OrderDate
	case OrderTitle:
		f.Order = OrderTitle
	case OrderPrice:
		f.Order = OrderPrice
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		f.Page = page
	}
	return f
}

func lenientIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
