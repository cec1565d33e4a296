package lookup

import (
	"errors"
	"fmt"
)

// 包lookup提供对内存切片的严格基数查询。
// 引擎中所有“恰好一个”或“至多一个”的查找都必须经过这里，
// 找到多余的匹配时绝不猜测调用方想要哪一个。

var (
	// ErrNotFound 表示要求恰好一个匹配的查询没有找到任何匹配。
	ErrNotFound = errors.New("lookup: no matching element")

	// ErrCardinality 表示查询找到的匹配数量与要求不符。
	ErrCardinality = errors.New("lookup: unexpected number of matching elements")
)

// First 返回第一个满足predicate的元素。
// 没有匹配时返回零值和false，不视为错误。
func First[T any](items []T, predicate func(T) bool) (T, bool) {
	for _, item := range items {
		if predicate(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Filter 返回所有满足predicate的元素。
func Filter[T any](items []T, predicate func(T) bool) []T {
	filtered := make([]T, 0)
	for _, item := range items {
		if predicate(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// FilterExactly 返回所有满足predicate的元素，
// 并要求匹配数量恰好为count，否则返回ErrCardinality。
func FilterExactly[T any](items []T, predicate func(T) bool, count int) ([]T, error) {
	filtered := Filter(items, predicate)
	if len(filtered) != count {
		return nil, fmt.Errorf("%w: found %d, expected %d", ErrCardinality, len(filtered), count)
	}
	return filtered, nil
}

// Single 返回恰好一个满足predicate的元素。
// 没有匹配返回ErrNotFound，多于一个返回ErrCardinality。
func Single[T any](items []T, predicate func(T) bool) (T, error) {
	var zero T
	filtered := Filter(items, predicate)
	switch len(filtered) {
	case 0:
		return zero, ErrNotFound
	case 1:
		return filtered[0], nil
	default:
		return zero, fmt.Errorf("%w: found %d, expected 1", ErrCardinality, len(filtered))
	}
}

// SingleOrNone 返回至多一个满足predicate的元素。
// 没有匹配返回零值和false；多于一个返回ErrCardinality。
func SingleOrNone[T any](items []T, predicate func(T) bool) (T, bool, error) {
	var zero T
	filtered := Filter(items, predicate)
	switch len(filtered) {
	case 0:
		return zero, false, nil
	case 1:
		return filtered[0], true, nil
	default:
		return zero, false, fmt.Errorf("%w: found %d, expected 0 or 1", ErrCardinality, len(filtered))
	}
}
