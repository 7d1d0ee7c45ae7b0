package types

// VideoSearchResult is one entry returned by the video search endpoint.
type VideoSearchResult struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channel_title"`
	URL          string `json:"url"`
	Thumbnail    string `json:"thumbnail"`
}

// StudyRequest asks the worker to turn a video into study material.
type StudyRequest struct {
	RequestID   string `json:"request_id"`
	VideoID     string `json:"video_id"`
	IncludeQuiz bool   `json:"include_quiz"`
}

// StudyResult is published once per StudyRequest.
type StudyResult struct {
	RequestID  string         `json:"request_id"`
	VideoID    string         `json:"video_id"`
	Success    bool           `json:"success"`
	Message    string         `json:"message,omitempty"`
	Transcript string         `json:"transcript,omitempty"`
	Summary    string         `json:"summary,omitempty"`
	Quiz       []QuizQuestion `json:"quiz,omitempty"`
}
