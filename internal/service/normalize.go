package service

import (
	"math"
	"strings"

	"github.com/spf13/cast"

	"invoicelens/internal/domain"
)

// PageEntries turns one model reply for page pageNum into page entries. A
// reply shaped like a whole document contributes each element of its
// "pages" array; any other reply is a single page. Every entry is numbered
// pageNum regardless of what the model wrote.
func PageEntries(obj map[string]interface{}, pageNum int) ([]domain.PageResult, error) {
	raw, ok := obj["pages"]
	if !ok {
		return []domain.PageResult{NormalizePage(obj, pageNum)}, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, errPagesNotArray
	}
	entries := make([]domain.PageResult, 0, len(list))
	for _, el := range list {
		m, ok := el.(map[string]interface{})
		if !ok {
			continue
		}
		entries = append(entries, NormalizePage(m, pageNum))
	}
	return entries, nil
}

// NormalizePage converts an untyped page object into a PageResult.
func NormalizePage(obj map[string]interface{}, pageNum int) domain.PageResult {
	page := domain.PageResult{
		PageNum:   pageNum,
		LineItems: []domain.LineItem{},
		SubTotals: []float64{},
	}

	if items, ok := obj["line_items"].([]interface{}); ok {
		for _, el := range items {
			m, ok := el.(map[string]interface{})
			if !ok {
				continue
			}
			page.LineItems = append(page.LineItems, normalizeLineItem(m, pageNum))
		}
	}

	if subs, ok := obj["sub_totals"].([]interface{}); ok {
		for _, v := range subs {
			if f, ok := toNumber(v); ok {
				page.SubTotals = append(page.SubTotals, f)
			}
		}
	}

	if f, ok := toNumber(obj["final_total"]); ok {
		page.FinalTotal = &f
	}
	if msg, ok := obj["error"].(string); ok {
		page.Error = msg
	}
	return page
}

func normalizeLineItem(m map[string]interface{}, pageNum int) domain.LineItem {
	item := domain.LineItem{
		Description: cast.ToString(m["description"]),
		Page:        pageNum,
	}
	if f, ok := toNumber(m["amount"]); ok {
		item.Amount = f
	}
	if f, ok := toNumber(m["page"]); ok {
		if p, ok := toInt(f); ok && p >= 1 {
			item.Page = p
		}
	}
	if bbox, ok := m["bbox"].(map[string]interface{}); ok {
		item.BBox = normalizeBBox(bbox)
	}
	if c, ok := m["confidence"].(float64); ok {
		item.Confidence = &c
	}
	return item
}

func normalizeBBox(m map[string]interface{}) *domain.BBox {
	coords := [4]int{}
	for i, key := range []string{"x", "y", "w", "h"} {
		f, ok := m[key].(float64)
		if !ok {
			return nil
		}
		n, ok := toInt(f)
		if !ok {
			return nil
		}
		coords[i] = n
	}
	return &domain.BBox{X: coords[0], Y: coords[1], W: coords[2], H: coords[3]}
}

// toNumber accepts finite JSON numbers and numeric strings. NaN and
// infinities are treated as absent since they cannot be encoded as JSON.
func toNumber(v interface{}) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case float64:
		f = t
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return 0, false
		}
		var err error
		if f, err = cast.ToFloat64E(t); err != nil {
			return 0, false
		}
	default:
		var err error
		if f, err = cast.ToFloat64E(t); err != nil {
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toInt converts an integral value within the int32 range.
func toInt(f float64) (int, bool) {
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
