package asset

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/okian/assetlens/internal/request"
)

// Category labels accepted by the detail endpoint.
const (
	CategoryLiquid    = "活钱管理"
	CategoryStable    = "稳健理财"
	CategoryLongTerm  = "长期投资"
	CategoryInsurance = "保险保障"
)

// ErrEmptyResponse is returned by DecodeDistribution for a nil envelope or empty data.
var ErrEmptyResponse = errors.New("empty distribution response")

// Categories lists the category labels in display order.
func Categories() []string {
	return []string{CategoryLiquid, CategoryStable, CategoryLongTerm, CategoryInsurance}
}

// Item is one named holding.
type Item struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Distribution is the data body served by every /asset endpoint.
type Distribution struct {
	Total     float64 `json:"total"`
	Items     []Item  `json:"items"`
	Timestamp int64   `json:"timestamp"`
}

// Share returns the fraction of Total held by item i, or 0 when Total is 0.
func (d Distribution) Share(i int) float64 {
	if d.Total == 0 || i < 0 || i >= len(d.Items) {
		return 0
	}
	return d.Items[i].Value / d.Total
}

// DecodeDistribution decodes resp.Data. It does not validate the values.
func DecodeDistribution(resp *request.Response) (Distribution, error) {
	var d Distribution
	if resp == nil || len(resp.Data) == 0 || string(resp.Data) == "null" {
		return d, ErrEmptyResponse
	}
	if err := json.Unmarshal(resp.Data, &d); err != nil {
		return d, fmt.Errorf("decode distribution: %w", err)
	}
	return d, nil
}
