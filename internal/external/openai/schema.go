package openai

// scoreSchema is the strict JSON schema constraining every scoring
// response. Enumerations and bounds mirror internal/contracts.ScoreCard;
// the parser still validates because strict mode does not enforce
// integer ranges on every model.
var scoreSchema = map[string]interface{}{
	"type":                 "object",
	"additionalProperties": false,
	"required": []string{
		"ticker", "sector",
		"value_score", "growth_score", "technical_score", "upside_score",
		"earnings_beat_probability", "confidence_level",
		"key_bull_thesis", "key_risk", "technical_setup",
	},
	"properties": map[string]interface{}{
		"ticker": map[string]interface{}{
			"type":        "string",
			"description": "Uppercase ticker symbol being scored",
		},
		"sector": map[string]interface{}{
			"type":        "string",
			"description": "GICS-style sector name, empty string when unknown",
		},
		"value_score": map[string]interface{}{
			"type":        "integer",
			"minimum":     1,
			"maximum":     10,
			"description": "Valuation attractiveness, 1 (expensive) to 10 (cheap)",
		},
		"growth_score": map[string]interface{}{
			"type":        "integer",
			"minimum":     1,
			"maximum":     10,
			"description": "Revenue/earnings growth quality, 1 to 10",
		},
		"technical_score": map[string]interface{}{
			"type":        "integer",
			"minimum":     1,
			"maximum":     10,
			"description": "Technical posture from trend and momentum, 1 to 10",
		},
		"upside_score": map[string]interface{}{
			"type":        "integer",
			"minimum":     1,
			"maximum":     10,
			"description": "Upside potential vs analyst targets, 1 to 10",
		},
		"earnings_beat_probability": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"High", "Medium", "Low"},
			"description": "Likelihood of beating next earnings",
		},
		"confidence_level": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"High", "Medium", "Low"},
			"description": "Analyst confidence given data completeness",
		},
		"key_bull_thesis": map[string]interface{}{
			"type":        "string",
			"maxLength":   280,
			"description": "One-liner for why the stock works, max 280 chars",
		},
		"key_risk": map[string]interface{}{
			"type":        "string",
			"maxLength":   220,
			"description": "The single biggest risk, max 220 chars",
		},
		"technical_setup": map[string]interface{}{
			"type":        "string",
			"maxLength":   220,
			"description": "Chart setup summary, max 220 chars",
		},
	},
}
