package pages

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// IsSortedAscending reports whether names are in A to Z order
func IsSortedAscending(names []string) bool {
	return slices.IsSorted(names)
}

// IsSortedDescending reports whether names are in Z to A order
func IsSortedDescending(names []string) bool {
	return slices.IsSortedFunc(names, func(a, b string) int {
		return strings.Compare(b, a)
	})
}

// PricesAscending reports whether prices never decrease
func PricesAscending(prices []decimal.Decimal) bool {
	return slices.IsSortedFunc(prices, func(a, b decimal.Decimal) int {
		return a.Cmp(b)
	})
}

// PricesDescending reports whether prices never increase
func PricesDescending(prices []decimal.Decimal) bool {
	return slices.IsSortedFunc(prices, func(a, b decimal.Decimal) int {
		return b.Cmp(a)
	})
}
