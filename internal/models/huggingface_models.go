package models

// Payloads for the Hugging Face inference API.

type TextClassificationRequest struct {
	Inputs string `json:"inputs"`
}

type (
	// The API nests one list of labels per input.
	TextClassificationResponse [][]ClassificationLabel
	ClassificationLabel        struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
)

type ZeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters ZeroShotParameters `json:"parameters"`
}

type ZeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

type ZeroShotResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// ZeroShotListResponse is the newer router format: a flat list of label/score
// pairs sorted by score.
type ZeroShotListResponse []ClassificationLabel
