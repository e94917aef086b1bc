package schemas

// responseSchemas maps backend endpoints to the JSON Schema their success
// responses must satisfy. Schemas check the fields the client actually reads;
// extra backend fields are allowed everywhere.
var responseSchemas = map[string]string{
	"/upload_resume": uploadResumeSchema,
	"/generate_report": `{
		"type": "object",
		"required": ["report"],
		"properties": {
			"report": {"type": "string"}
		}
	}`,
	"/explain_match": `{
		"type": "object",
		"required": ["job_role", "explanation"],
		"properties": {
			"job_role": {"type": "string"},
			"explanation": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["feature", "value"],
					"properties": {
						"feature": {"type": "string"},
						"value": {"type": "number"}
					}
				}
			}
		}
	}`,
	"/debug_drift": `{
		"type": "object",
		"required": ["is_drift", "p_value_avg", "message"],
		"properties": {
			"is_drift": {"type": "boolean"},
			"p_value_avg": {"type": "number"},
			"message": {"type": "string"}
		}
	}`,
	"/chat": `{
		"type": "object",
		"required": ["response"],
		"properties": {
			"response": {"type": "string"}
		}
	}`,
	"/auth/login":  tokenSchema,
	"/auth/signup": tokenSchema,
}

const uploadResumeSchema = `{
	"type": "object",
	"required": ["extracted_skills", "matches"],
	"properties": {
		"extracted_skills": {
			"type": "array",
			"items": {"type": "string"}
		},
		"matches": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["job_role", "match_score", "missing_skills"],
				"properties": {
					"job_role": {"type": "string"},
					"company": {"type": "string"},
					"domain": {"type": "string"},
					"min_experience": {"type": "string"},
					"match_score": {"type": "number", "minimum": 0, "maximum": 100},
					"missing_skills": {
						"type": "array",
						"items": {"type": "string"}
					}
				}
			}
		}
	}
}`

const tokenSchema = `{
	"type": "object",
	"required": ["access_token", "user"],
	"properties": {
		"access_token": {"type": "string"},
		"token_type": {"type": "string"},
		"user": {"type": "object"}
	}
}`
