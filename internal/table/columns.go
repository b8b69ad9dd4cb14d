package table

// Fixed columns of the response and judgement tables.
const (
	ColumnQuestionID   = "question_id"
	ColumnQuestion     = "question"
	ColumnTask         = "task"
	ColumnGroundTruth  = "ground_truth"
	ColumnMajorityVote = "majority_vote"
)

// ScoreColumn holds judge's rubric total for responder.
func ScoreColumn(judge, responder string) string {
	return judge + "_SCORING_" + responder
}

// ReasonColumn holds judge's justification for responder's score.
func ReasonColumn(judge, responder string) string {
	return judge + "_SR_" + responder
}

// PreferenceColumn holds the responder judge preferred.
func PreferenceColumn(judge string) string {
	return judge + "_PREFERENCE"
}

// PreferenceColumns maps judges to their preference columns.
func PreferenceColumns(judges []string) []string {
	out := make([]string, len(judges))
	for i, judge := range judges {
		out[i] = PreferenceColumn(judge)
	}
	return out
}
