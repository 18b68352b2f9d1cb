// SPDX-License-Identifier: Apache-2.0

package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Page is one segment of a rendered report, delimited by "page N of M" footers.
type Page struct {
	PageNumber int      `json:"page_number"`
	Text       string   `json:"text"`
	Lines      []string `json:"lines"`
}

// ParsedDocument is the normalized view of a rendered report that checks run against.
type ParsedDocument struct {
	Text       string         `json:"text"`
	Pages      []Page         `json:"pages"`
	TotalPages int            `json:"total_pages"`
	Layout     map[string]any `json:"layout,omitempty"`
}

// Fix describes an automated remediation for a failing check.
type Fix struct {
	Action  string `json:"action"`
	Target  string `json:"target"`
	Details string `json:"details"`
}

type CheckResult struct {
	ID      string `json:"id"`
	Pass    bool   `json:"pass"`
	Page    []int  `json:"page,omitempty"`
	Message string `json:"message"`
	Fix     *Fix   `json:"fix,omitempty"`

	// Category is stamped by the engine from the check that produced the result.
	Category Category `json:"-"`
}

type Summary struct {
	Pass     bool `json:"pass"`
	Pages    int  `json:"pages"`
	Errors   int  `json:"errors"`
	Warnings int  `json:"warnings"`
}

type Suggestion struct {
	Priority int    `json:"priority"`
	Action   string `json:"action"`
	Details  string `json:"details"`
}

// ValidationReport is the result of validating one rendered report.
type ValidationReport struct {
	Summary            Summary       `json:"summary"`
	Checks             []CheckResult `json:"checks"`
	AutoFixSuggestions []Suggestion  `json:"auto_fix_suggestions"`
}

// Address is the structured property address used by the report generator.
type Address struct {
	Street       string      `json:"street,omitempty"`
	HouseNumber  HouseNumber `json:"house_number,omitempty"`
	Neighborhood string      `json:"neighborhood,omitempty"`
	City         string      `json:"city,omitempty"`
}

// HouseNumber is a house number as written. Producers send it either as a
// string ("12א") or as a bare JSON number (12); both decode to the same text.
type HouseNumber string

func (h *HouseNumber) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		*h = ""
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*h = HouseNumber(s)
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return fmt.Errorf("house_number must be a string or a number, got %s", raw)
	}
	*h = HouseNumber(raw)
	return nil
}

type Rights struct {
	Attachments []any `json:"attachments,omitempty"`
}

// Calc51 holds the comparison-approach results (section 5.1).
type Calc51 struct {
	EquivPricePerSqm *float64 `json:"equiv_price_per_sqm,omitempty"`
}

// Calc52 holds the valuation results (section 5.2).
type Calc52 struct {
	EqArea            *float64 `json:"eq_area,omitempty"`
	AssetValue        *float64 `json:"asset_value,omitempty"`
	AssetValueRounded *float64 `json:"asset_value_rounded,omitempty"`
}

type PropertyMeta struct {
	BuiltAreaSqm *float64 `json:"built_area_sqm,omitempty"`
	BalconySqm   *float64 `json:"balcony_sqm,omitempty"`
}

// GenerationContext is the evidence of what the report was supposed to contain.
// Checks only read it.
type GenerationContext struct {
	AddressStruct   *Address         `json:"address_struct,omitempty"`
	ClientName      string           `json:"client_name,omitempty"`
	InspectionDate  string           `json:"inspection_date,omitempty"`
	ValuationDate   string           `json:"valuation_date,omitempty"`
	Rights          *Rights          `json:"rights,omitempty"`
	Permits         []any            `json:"permits,omitempty"`
	ComparablesGrid []map[string]any `json:"comparables_grid,omitempty"`
	Calc51          *Calc51          `json:"calc_5_1,omitempty"`
	Calc52          *Calc52          `json:"calc_5_2,omitempty"`
	PropertyMeta    *PropertyMeta    `json:"property_meta,omitempty"`
}

// Inputs is the raw material for one validation.
type Inputs struct {
	// FileBytes is a binary rendering, read as a PDF.
	FileBytes []byte
	// FileBase64 is a base64-encoded word-processor document.
	FileBase64    string
	TextExtracted string
	LayoutMap     map[string]any
	GenContext    *GenerationContext
}

// Source is what a DocumentParser extracts text from.
type Source struct {
	Bytes  []byte
	Base64 string
	Text   string
}

// Extraction is the text a parser recovered from a Source.
// NativePages is zero when the format carries no page count.
type Extraction struct {
	Text        string
	NativePages int
}

type DocumentParser interface {
	CanHandle(source Source) bool
	Parse(ctx context.Context, source Source) (Extraction, error)
	Name() string
}
