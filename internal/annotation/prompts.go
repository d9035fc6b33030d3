package annotation

import "github.com/heartmarshall/feedback-backend/internal/adapter/llm"

type task struct {
	name        string
	instruction string
	prompt      string
	temperature float64
	schema      map[string]any
}

type classificationOutput struct {
	Sentiment string   `json:"sentiment" jsonschema:"enum=positive,enum=negative,enum=neutral"`
	Tags      []string `json:"tags"`
	Summary   string   `json:"summary"`
}

type toxicityOutput struct {
	Toxic  *bool  `json:"toxic"`
	Reason string `json:"reason"`
}

var (
	classifyTask = task{
		name:        "classify",
		instruction: "You are an HR analyst who understands how people write about their workplace.",
		prompt: `Analyze the following employee comment and return:

1. The overall sentiment: only one of positive, negative or neutral.
2. Two or three short topical tags naming the key subjects of the comment.
3. A brief, neutral one-sentence summary. Do not repeat the sentiment or the tags verbatim.

Comment: %s

Return only a valid JSON object: {"sentiment": "...", "tags": ["..."], "summary": "..."}`,
		temperature: 0.4,
		schema:      llm.GenerateSchema[classificationOutput](),
	}

	empathizeTask = task{
		name:        "empathize",
		instruction: "You specialize in handling delicate matters with courtesy and empathy on behalf of an HR department.",
		prompt: `Reply politely and empathetically to this negative employee comment.
Be professional and never defensive.

Employee comment:
%s`,
		temperature: 0.5,
	}

	suggestTask = task{
		name:        "suggest",
		instruction: "You are a consultant in team management and employee experience. Propose a concrete improvement based on the comment.",
		prompt: `Employee comment:
%s

Propose one useful improvement the company can apply. Return only one sentence with the suggestion.`,
		temperature: 0.7,
	}

	toxicityTask = task{
		name:        "toxicity",
		instruction: "You are an expert in language analysis and human resources. Detect whether a comment is toxic and explain why.",
		prompt: `Employee comment:
"%s"

Decide whether the comment contains toxic, aggressive or inappropriate language.
Return a JSON object with the fields:
- toxic: true or false
- reason: one short sentence explaining why it is or is not toxic`,
		temperature: 0.3,
		schema:      llm.GenerateSchema[toxicityOutput](),
	}

	urgencyTask = task{
		name:        "urgency",
		instruction: "You are an HR expert who rates how urgently internal comments need attention.",
		prompt: `Classify this employee comment by how urgently the HR team should act on it.

Comment: %s

Possible categories: urgent, normal, low.

Return only one word: urgent, normal or low.`,
		temperature: 0.3,
	}

	trendTask = task{
		name:        "trend",
		instruction: "You are an expert in emotional patterns across employee comments.",
		prompt: `Analyze this sequence of sentiments expressed by the same employee over time, oldest first:

History: %s

Is there a relevant change in their attitude?

Return only one clear, direct sentence stating whether it has improved, worsened or stayed stable.`,
		temperature: 0.4,
	}
)
