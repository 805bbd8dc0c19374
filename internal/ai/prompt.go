package ai

import "fmt"

// BuildPrompt constructs the instruction sent to the model. Spelling out
// the exact keys raises the chance of getting valid JSON back.
func BuildPrompt(plot string) string {
	return "You are a world-class movie identification assistant. Given a plot description, you " +
		"search the internet for clues (even though you rely on your own knowledge) and deduce " +
		"the most likely movie. You must provide four fields: movie_name, release_date, " +
		"rationale, and confidence. The rationale should explain why the selected movie fits " +
		"the description, referencing key plot points, actors, or unique elements. Confidence " +
		"should be a float between 0 and 1 representing your certainty.\n\n" +
		fmt.Sprintf("Plot: %s\n\n", plot) +
		"Respond with a JSON object using these exact keys: movie_name, release_date, rationale, " +
		"confidence."
}
