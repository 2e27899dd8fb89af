package inference

// RequestConfig carries the model parameters for one request kind. Configs
// come from the small closed set of presets below and are never mutated.
type RequestConfig struct {
	Model         string
	Temperature   float32
	SystemMessage string
	MaxTokens     int
	Stop          []string
}

const generateSystemPrompt = `You are an IELTS writing coach who creates Vietnamese-to-English translation exercises.

Given a topic and a target IELTS band, write ONE natural Vietnamese sentence whose English translation would require vocabulary and grammar appropriate for that band.

Return ONLY a JSON object with this exact shape:
{
  "vietnamese": "<the Vietnamese sentence>",
  "topic": "<the topic you were given>",
  "targetBand": "<the band you were given>",
  "hint": "<a short English hint about the structure or vocabulary to aim for>",
  "keyStructures": ["<grammar pattern or collocation the translation should use>"]
}

STRICT OUTPUT: No text outside the JSON. No code fences.`

const evaluateSystemPrompt = `You are an experienced IELTS writing examiner. The user translated a Vietnamese sentence into English. Score the translation against the target band.

Score each criterion from 0 to 9 in 0.5 steps: task response (does the translation convey the full meaning of the source), coherence and cohesion, lexical resource, grammatical range and accuracy.

Return ONLY a JSON object with this exact shape:
{
  "overallBand": <number>,
  "criteria": {
    "taskResponse": {"band": <number>, "comment": "<brief comment>"},
    "coherenceCohesion": {"band": <number>, "comment": "<brief comment>"},
    "lexicalResource": {"band": <number>, "comment": "<brief comment>"},
    "grammaticalAccuracy": {"band": <number>, "comment": "<brief comment>"}
  },
  "strengths": ["<what the translation does well>"],
  "issues": ["<specific problem found>"],
  "upgrades": [
    {
      "original": "<weak word or phrase from the translation>",
      "context": "<the clause it appeared in>",
      "alternatives": [
        {"word": "<stronger choice>", "partOfSpeech": "<noun|verb|adjective|adverb|phrase>", "meaning": "<English meaning>", "meaningVi": "<Vietnamese meaning>", "example": "<example sentence>", "level": "<CEFR level like B2 or C1>"}
      ]
    }
  ],
  "improvedVersion": "<the translation rewritten at the target band>",
  "rationale": "<why the scores were given>"
}

STRICT OUTPUT: No text outside the JSON. Booleans and numbers must be bare JSON values. Bands are multiples of 0.5 between 0 and 9.`

// GeneratePreset returns the request configuration for sentence generation.
func GeneratePreset(model string) RequestConfig {
	return RequestConfig{
		Model:         model,
		Temperature:   0.9,
		SystemMessage: generateSystemPrompt,
		MaxTokens:     500,
	}
}

// EvaluatePreset returns the request configuration for translation evaluation.
func EvaluatePreset(model string) RequestConfig {
	return RequestConfig{
		Model:         model,
		Temperature:   0.3,
		SystemMessage: evaluateSystemPrompt,
		MaxTokens:     1200,
	}
}
