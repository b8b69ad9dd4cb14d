package judge

import "strconv"

// Rubric lists the eleven binary criteria. A response earns one point per
// satisfied criterion.
const Rubric = " 1. Instruction Following: All prompt instructions and constraints are fully satisfied by the response." +
	" 2. Relevance: All information in the response is required by the prompt or adds helpful and enriching information relevant to the prompt. There is no entirely irrelevant information." +
	" 3. Helpfulness: The response contains sufficient detail and specificity to satisfy all parts of the prompt." +
	" 4. Accuracy of Claims: All facts that are objectively verifiable are correct, aligning with established facts or evidence." +
	" 5. No Misleading Information: All claims are appropriately contextualized where necessary, and opinions/controversial statements are not stated as fact." +
	" 6. No Hallucinations: All people, events, websites, articles, or institutions referenced in the response are real (not hallucinated)." +
	" 7. Numbers and Calculations: All equations, dates, figures, and other numerical information is correct and presented accurately (with wording to indicate approximation if appropriate, and correct syntax)." +
	" 8. Readability: The response is clear and easy to read." +
	" 9. Language Mechanics - The response has no grammar issues, typos, syntax errors, etc" +
	" 10. Outline and Coherence: The order and presentation of ideas are coherent and have a good flow." +
	" 11. Concision- The response efficiently communicate concepts and key points without being verbose."

// MaxScore is the number of rubric criteria.
const MaxScore = 11

// ScoringPrompt asks for an Overall Score followed by a justification.
const ScoringPrompt = "You are an impartial judge. You will receive a prompt and a response. " +
	"Rate the response in the context of the prompt using this evaluation criteria: " + Rubric +
	" Assign 1 point for the response meeting each of the criteria, and 0 for not meeting them." +
	" Provide a brief justification of your scoring. Compute the overall score as a sum of individual scores." +
	" Return the Overall Score followed by the justification."

// PreferencePrompt asks for the number of the best response only.
const PreferencePrompt = "You are an impartial judge. You will receive a prompt and a set of responses marked as " +
	"Response 1, Response 2, and so on. Choose the best response in the context of the prompt using this evaluation criteria: " +
	Rubric + ". Only return the best response number. For eg. if you think Response 2 is better than Response 1, only reply the number 2."

const (
	scoreFeedback      = "Invalid Score. Try Again. Make sure to the overall score is an integer. " + ScoringPrompt
	preferenceFeedback = "Invalid Response. Try Again. Make sure to pick only one of the available response numbers. Return the number only. " + PreferencePrompt
)

func scoringRequest(question, response string) string {
	return ScoringPrompt + "\nQuestion:\n" + question + "\n\nResponse:\n" + response + "\n"
}

func preferenceRequest(question string, answers []string) string {
	prompt := PreferencePrompt + "\nQuestion:\n" + question
	for i, answer := range answers {
		prompt += "\n\nResponse " + strconv.Itoa(i+1) + ":\n" + answer
	}
	return prompt
}
