package models

const (
	SourceText  = "text"
	SourceAudio = "audio"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

const (
	BiasNeutral        = "neutral"
	BiasLeftLeaning    = "left-leaning"
	BiasRightLeaning   = "right-leaning"
	BiasLoadedLanguage = "loaded-language"
)

// Which tier of a classifier produced a result.
const (
	MethodPhrase  = "phrase"
	MethodModel   = "model"
	MethodLexicon = "lexicon"
	MethodKeyword = "keyword"
	MethodDefault = "default"
)

// AnalysisRequest carries the candidate input sources. Only the first
// populated field in the order Text, URL, AudioBase64, VideoURL is used.
type AnalysisRequest struct {
	Text        string `json:"text"`
	URL         string `json:"url" binding:"omitempty,url"`
	AudioBase64 string `json:"audio_base64"`
	VideoURL    string `json:"video_url" binding:"omitempty,url"`
}

type ExtractedDocument struct {
	Source  string `json:"source"`
	RawText string `json:"raw_text"`
}

type SentimentResult struct {
	Label    string  `json:"label"`
	Score    float64 `json:"score"`
	Compound float64 `json:"compound"`
	Method   string  `json:"method"`
}

type BiasResult struct {
	Label  string             `json:"label"`
	Score  float64            `json:"score"`
	Scores map[string]float64 `json:"scores,omitempty"`
	Method string             `json:"method"`
}

type AnalysisRecord struct {
	Sentence  string          `json:"sentence"`
	Sentiment SentimentResult `json:"sentiment"`
	Bias      BiasResult      `json:"bias"`
}

type AnalysisResponse struct {
	Source        string           `json:"source"`
	TextSnippet   string           `json:"text_snippet"`
	SentenceCount int              `json:"sentence_count"`
	Analysis      []AnalysisRecord `json:"analysis"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Models    map[string]string `json:"models"`
	Inference string            `json:"inference"`
}
