package models

// Emotion labels a plant tweet.
type Emotion string

const (
	EmotionHappy    Emotion = "happy"
	EmotionAngry    Emotion = "angry"
	EmotionStressed Emotion = "stressed"
	EmotionAnxious  Emotion = "anxious"
)

// Emotions lists the labels in display order.
var Emotions = []Emotion{EmotionHappy, EmotionAngry, EmotionStressed, EmotionAnxious}

// Emoji is the glyph shown next to a tweet.
func (e Emotion) Emoji() string {
	switch e {
	case EmotionHappy:
		return "😊"
	case EmotionAngry:
		return "😡"
	case EmotionStressed:
		return "😰"
	case EmotionAnxious:
		return "😟"
	default:
		return "🌱"
	}
}

// PlantTweet is a short generated status message attributed to a plant.
type PlantTweet struct {
	ID        string     `json:"id"`
	PlantID   string     `json:"plantId"`
	PlantName string     `json:"plantName"`
	Content   string     `json:"content"`
	Emotion   Emotion    `json:"emotion"`
	Timestamp string     `json:"timestamp"`
	Location  Coordinate `json:"location"`
}
