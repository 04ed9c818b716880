package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/Cheertaboi/maxreward-console/internal/models"
)

var settingsPaths = []string{
	"data.setting_attribute",
	"setting_attribute",
	"data.settings.setting_attribute",
}

// Settings reads the maxreward block of the settings payload. The backend may
// store setting_attribute as a JSON string; both forms are accepted.
func Settings(raw []byte) (models.MaxRewardSettings, error) {
	if !gjson.ValidBytes(raw) {
		return models.MaxRewardSettings{}, ErrMalformedResponse
	}
	root := gjson.ParseBytes(raw)
	for _, path := range settingsPaths {
		attr := root.Get(path)
		if attr.Type == gjson.String && gjson.Valid(attr.Str) {
			attr = gjson.Parse(attr.Str)
		}
		mr := attr.Get("maxreward")
		if !mr.IsObject() {
			continue
		}
		return models.MaxRewardSettings{
			RMPoints:         decimalOf(mr.Get("rm_points")),
			PPPoints:         decimalOf(mr.Get("pp_points")),
			RPPoints:         decimalOf(mr.Get("rp_points")),
			CPPoints:         decimalOf(mr.Get("cp_points")),
			CRPoints:         decimalOf(mr.Get("cr_points")),
			MaxLevel:         intOr(mr.Get("max_level"), 0),
			DeductablePoints: decimalOf(mr.Get("deductable_points")),
		}, nil
	}
	return models.MaxRewardSettings{}, ErrMalformedResponse
}

func decimalOf(r gjson.Result) decimal.Decimal {
	switch r.Type {
	case gjson.Number:
		if d, err := decimal.NewFromString(r.Raw); err == nil {
			return d
		}
	case gjson.String:
		if d, err := decimal.NewFromString(strings.TrimSpace(r.Str)); err == nil {
			return d
		}
	}
	return decimal.Zero
}
