/*
Package params builds the statutory parameter registry from JSON tables.

PURPOSE:
  Converts JSON parameter definitions into statute.ParameterSet values and
  assembles the frozen Registry the engine runs against. Statutory amendments
  arrive as data, not code: adding a year means adding a JSON block.

WHY JSON?
  - Amendments can be reviewed against the law text line by line
  - No recompilation to update a bracket table
  - The same schema can later load from a database or admin UI

JSON SCHEMA:
  {
    "paragraphs": [
      {
        "paragraph": "estg_32a",
        "year": 2023,
        "brackets": [
          {"lower": "0", "formula": {"kind": "zero"}},
          {"lower": "10908", "formula": {"kind": "polynomial",
           "a2": "979.18", "a1": "1400", "a0": "0"}},
          {"lower": "62810", "formula": {"kind": "linear",
           "rate": "0.42", "intercept": "-9972.98"}}
        ],
        "scalars": {"exemption": "16956"}
      }
    ]
  }

  All numbers are strings so bracket coefficients survive the trip through
  JSON without floating-point drift.

USAGE:
  reg, err := params.Load()            // embedded statutory tables
  reg, err := params.LoadFrom(data)    // custom tables (tests, what-ifs)

SEE ALSO:
  - tables.go: The embedded statutory data
  - statute/registry.go: The registry being populated
*/
package params

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/entitlement-engine/statute"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

type tablesJSON struct {
	Paragraphs []paragraphJSON `json:"paragraphs"`
}

type paragraphJSON struct {
	Paragraph string            `json:"paragraph"`
	Year      int               `json:"year"`
	Brackets  []bracketJSON     `json:"brackets,omitempty"`
	Scalars   map[string]string `json:"scalars,omitempty"`
}

type bracketJSON struct {
	Lower   string      `json:"lower"`
	Formula formulaJSON `json:"formula"`
}

type formulaJSON struct {
	Kind         string `json:"kind"`
	A2           string `json:"a2,omitempty"`
	A1           string `json:"a1,omitempty"`
	A0           string `json:"a0,omitempty"`
	Rate         string `json:"rate,omitempty"`
	Intercept    string `json:"intercept,omitempty"`
	Cap          string `json:"cap,omitempty"`
	BaseShare    string `json:"base_share,omitempty"`
	PerDependent string `json:"per_dependent,omitempty"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load builds the registry from the embedded statutory tables.
func Load() (*statute.Registry, error) {
	return LoadFrom([]byte(statutoryTables))
}

// LoadFrom builds a frozen registry from a JSON tables document.
func LoadFrom(data []byte) (*statute.Registry, error) {
	var doc tablesJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse parameter tables: %w", err)
	}
	if len(doc.Paragraphs) == 0 {
		return nil, fmt.Errorf("parameter tables define no paragraphs")
	}

	reg := statute.NewRegistry()
	for _, p := range doc.Paragraphs {
		set, err := buildSet(p)
		if err != nil {
			return nil, fmt.Errorf("paragraph %s year %d: %w", p.Paragraph, p.Year, err)
		}
		if err := reg.Register(set); err != nil {
			return nil, fmt.Errorf("paragraph %s year %d: %w", p.Paragraph, p.Year, err)
		}
	}
	reg.Freeze()
	return reg, nil
}

func buildSet(p paragraphJSON) (statute.ParameterSet, error) {
	set := statute.ParameterSet{
		Paragraph: statute.Paragraph(p.Paragraph),
		Year:      statute.Year(p.Year),
		Scalars:   statute.Scalars{},
	}

	for key, raw := range p.Scalars {
		v, err := parseDecimal(raw)
		if err != nil {
			return set, fmt.Errorf("scalar %q: %w", key, err)
		}
		set.Scalars[key] = v
	}

	for i, b := range p.Brackets {
		lower, err := parseDecimal(b.Lower)
		if err != nil {
			return set, fmt.Errorf("bracket %d lower bound: %w", i, err)
		}
		formula, err := buildFormula(b.Formula)
		if err != nil {
			return set, fmt.Errorf("bracket %d: %w", i, err)
		}
		set.Brackets.Brackets = append(set.Brackets.Brackets, statute.Bracket{
			Lower:   statute.Amount{Value: lower},
			Formula: formula,
		})
	}

	return set, nil
}

func buildFormula(f formulaJSON) (statute.Formula, error) {
	out := statute.Formula{Kind: statute.FormulaKind(f.Kind)}

	switch out.Kind {
	case statute.FormulaZero:
		return out, nil

	case statute.FormulaPolynomial:
		var err error
		if out.A2, err = parseDecimal(f.A2); err != nil {
			return out, fmt.Errorf("a2: %w", err)
		}
		if out.A1, err = parseDecimal(f.A1); err != nil {
			return out, fmt.Errorf("a1: %w", err)
		}
		if out.A0, err = parseDecimal(f.A0); err != nil {
			return out, fmt.Errorf("a0: %w", err)
		}
		return out, nil

	case statute.FormulaLinear:
		var err error
		if out.Rate, err = parseDecimal(f.Rate); err != nil {
			return out, fmt.Errorf("rate: %w", err)
		}
		if out.Intercept, err = parseDecimal(f.Intercept); err != nil {
			return out, fmt.Errorf("intercept: %w", err)
		}
		return out, nil

	case statute.FormulaCappedRate:
		var err error
		if out.Rate, err = parseDecimal(f.Rate); err != nil {
			return out, fmt.Errorf("rate: %w", err)
		}
		if f.Cap != "" {
			capV, err := parseDecimal(f.Cap)
			if err != nil {
				return out, fmt.Errorf("cap: %w", err)
			}
			capAmt := statute.Amount{Value: capV}
			out.Cap = &capAmt
		}
		return out, nil

	case statute.FormulaShare:
		var err error
		if out.BaseShare, err = parseDecimal(f.BaseShare); err != nil {
			return out, fmt.Errorf("base_share: %w", err)
		}
		if out.PerDependent, err = parseDecimal(f.PerDependent); err != nil {
			return out, fmt.Errorf("per_dependent: %w", err)
		}
		return out, nil

	default:
		return out, fmt.Errorf("unknown formula kind %q", f.Kind)
	}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
