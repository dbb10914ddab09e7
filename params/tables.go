/*
tables.go - Embedded statutory parameter tables

PURPOSE:
  The German statutory parameters the engine ships with, covering validity
  years 2021-2023. Years without their own entry backfill from the most
  recent earlier year (amendments stay in force until replaced), so the
  2022 aid amendments also govern 2023 lookups.

SOURCES (paragraph -> law):
  estg_32a    Income tax zones, EStG §32a, assessment years 2021-2023
  solz        Solidarity surcharge, SolzG §3/§4
  sgb_21      Employee social-insurance rates and assessment ceilings
  estg_9a     Employment standard deduction, EStG §9a
  bafoeg_13   Base need, housing, maximum award, eligibility age limit
  bafoeg_13a  Health and long-term care insurance supplements
  bafoeg_23   Student own-income allowances
  bafoeg_25   Parent/spouse allowances and contribution retention shares
  bafoeg_29   Asset allowances

  Need, allowance, and supplement scalars are monthly amounts; tax and
  insurance tables are annual.
*/
package params

const statutoryTables = `{
  "paragraphs": [
    {
      "paragraph": "estg_32a",
      "year": 2021,
      "brackets": [
        {"lower": "0", "formula": {"kind": "zero"}},
        {"lower": "9744", "formula": {"kind": "polynomial", "a2": "995.21", "a1": "1400", "a0": "0"}},
        {"lower": "14753", "formula": {"kind": "polynomial", "a2": "208.85", "a1": "2397", "a0": "950.96"}},
        {"lower": "57919", "formula": {"kind": "linear", "rate": "0.42", "intercept": "-9136.63"}},
        {"lower": "274613", "formula": {"kind": "linear", "rate": "0.45", "intercept": "-17374.99"}}
      ]
    },
    {
      "paragraph": "estg_32a",
      "year": 2022,
      "brackets": [
        {"lower": "0", "formula": {"kind": "zero"}},
        {"lower": "10347", "formula": {"kind": "polynomial", "a2": "1088.67", "a1": "1400", "a0": "0"}},
        {"lower": "14926", "formula": {"kind": "polynomial", "a2": "206.43", "a1": "2397", "a0": "869.32"}},
        {"lower": "58597", "formula": {"kind": "linear", "rate": "0.42", "intercept": "-9336.45"}},
        {"lower": "277826", "formula": {"kind": "linear", "rate": "0.45", "intercept": "-17671.20"}}
      ]
    },
    {
      "paragraph": "estg_32a",
      "year": 2023,
      "brackets": [
        {"lower": "0", "formula": {"kind": "zero"}},
        {"lower": "10908", "formula": {"kind": "polynomial", "a2": "979.18", "a1": "1400", "a0": "0"}},
        {"lower": "15999", "formula": {"kind": "polynomial", "a2": "192.59", "a1": "2397", "a0": "966.53"}},
        {"lower": "62810", "formula": {"kind": "linear", "rate": "0.42", "intercept": "-9972.98"}},
        {"lower": "277826", "formula": {"kind": "linear", "rate": "0.45", "intercept": "-18307.73"}}
      ]
    },

    {
      "paragraph": "solz",
      "year": 2021,
      "scalars": {"rate": "0.055", "exemption": "16956", "mitigation_rate": "0.119"}
    },
    {
      "paragraph": "solz",
      "year": 2023,
      "scalars": {"rate": "0.055", "exemption": "17543", "mitigation_rate": "0.119"}
    },

    {
      "paragraph": "sgb_21",
      "year": 2021,
      "scalars": {
        "pension_rate": "0.093", "pension_ceiling": "85200",
        "health_rate": "0.0795", "health_ceiling": "58050",
        "care_rate": "0.01525", "care_ceiling": "58050",
        "unemployment_rate": "0.012", "unemployment_ceiling": "85200"
      }
    },
    {
      "paragraph": "sgb_21",
      "year": 2022,
      "scalars": {
        "pension_rate": "0.093", "pension_ceiling": "84600",
        "health_rate": "0.0795", "health_ceiling": "58050",
        "care_rate": "0.01525", "care_ceiling": "58050",
        "unemployment_rate": "0.012", "unemployment_ceiling": "84600"
      }
    },
    {
      "paragraph": "sgb_21",
      "year": 2023,
      "scalars": {
        "pension_rate": "0.093", "pension_ceiling": "87600",
        "health_rate": "0.0805", "health_ceiling": "59850",
        "care_rate": "0.017", "care_ceiling": "59850",
        "unemployment_rate": "0.013", "unemployment_ceiling": "87600"
      }
    },

    {
      "paragraph": "estg_9a",
      "year": 2021,
      "scalars": {"standard_deduction": "1000"}
    },
    {
      "paragraph": "estg_9a",
      "year": 2022,
      "scalars": {"standard_deduction": "1200"}
    },
    {
      "paragraph": "estg_9a",
      "year": 2023,
      "scalars": {"standard_deduction": "1230"}
    },

    {
      "paragraph": "bafoeg_13",
      "year": 2021,
      "scalars": {
        "base_home": "427", "base_away": "427",
        "housing_home": "56", "housing_away": "325",
        "max_award": "861", "age_limit": "35"
      }
    },
    {
      "paragraph": "bafoeg_13",
      "year": 2022,
      "scalars": {
        "base_home": "452", "base_away": "452",
        "housing_home": "59", "housing_away": "360",
        "max_award": "934", "age_limit": "35"
      }
    },

    {
      "paragraph": "bafoeg_13a",
      "year": 2021,
      "scalars": {"health_supplement": "84", "care_supplement": "25", "family_insurance_age_limit": "27"}
    },
    {
      "paragraph": "bafoeg_13a",
      "year": 2022,
      "scalars": {"health_supplement": "94", "care_supplement": "28", "family_insurance_age_limit": "27"}
    },

    {
      "paragraph": "bafoeg_23",
      "year": 2021,
      "scalars": {"basic": "290", "spouse": "630", "child": "570"}
    },
    {
      "paragraph": "bafoeg_23",
      "year": 2022,
      "scalars": {"basic": "330", "spouse": "805", "child": "730"}
    },

    {
      "paragraph": "bafoeg_25",
      "year": 2021,
      "scalars": {
        "joint": "1890", "single": "1260", "spouse": "1260",
        "sibling_allowance": "570"
      },
      "brackets": [
        {"lower": "0", "formula": {"kind": "share", "base_share": "0.50", "per_dependent": "0.05"}}
      ]
    },
    {
      "paragraph": "bafoeg_25",
      "year": 2022,
      "scalars": {
        "joint": "2415", "single": "1605", "spouse": "1605",
        "sibling_allowance": "730"
      },
      "brackets": [
        {"lower": "0", "formula": {"kind": "share", "base_share": "0.50", "per_dependent": "0.05"}}
      ]
    },

    {
      "paragraph": "bafoeg_29",
      "year": 2021,
      "scalars": {"student_u30": "8200", "student_30plus": "8200", "dependent_addon": "2300"}
    },
    {
      "paragraph": "bafoeg_29",
      "year": 2022,
      "scalars": {"student_u30": "15000", "student_30plus": "45000", "dependent_addon": "2300"}
    }
  ]
}`
