package models

import "strings"

// Diagnosis is the structured output of the AI diagnosis step. It is produced
// once, stored immutably, and consumed read-only by the matching engine.
type Diagnosis struct {
	ID              string   `bson:"id,omitempty" json:"id,omitempty"`
	DeviceBrand     string   `bson:"deviceBrand,omitempty" json:"device_brand,omitempty"`
	DeviceType      string   `bson:"deviceType,omitempty" json:"device_type,omitempty"`
	DeviceCategory  string   `bson:"deviceCategory,omitempty" json:"device_category,omitempty"`
	RepairComponent string   `bson:"repairComponent,omitempty" json:"repair_component,omitempty"`
	RepairKeywords  []string `bson:"repairKeywords,omitempty" json:"repair_keywords,omitempty"`
}

// Empty reports whether the diagnosis carries no matching signal at all.
func (d Diagnosis) Empty() bool {
	return d.DeviceBrand == "" && d.DeviceType == "" && d.DeviceCategory == "" &&
		d.RepairComponent == "" && len(d.RepairKeywords) == 0
}

// QueryText builds the embedding query string: category, brand, type,
// component, then keywords, space-joined.
func (d Diagnosis) QueryText() string {
	parts := make([]string, 0, 4+len(d.RepairKeywords))
	for _, p := range []string{d.DeviceCategory, d.DeviceBrand, d.DeviceType, d.RepairComponent} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	for _, kw := range d.RepairKeywords {
		if kw != "" {
			parts = append(parts, kw)
		}
	}
	return strings.Join(parts, " ")
}
