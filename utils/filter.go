package utils

import (
	"strings"

	"github.com/elyashium/sylvan-web/models"
)

// FilterReadings keeps readings whose location string contains term
// (case-insensitive) and whose severity equals status. An empty status
// keeps every severity.
func FilterReadings(readings []models.SensorReading, term string, status models.Severity) []models.SensorReading {
	term = strings.ToLower(term)
	out := make([]models.SensorReading, 0, len(readings))
	for _, r := range readings {
		if !strings.Contains(strings.ToLower(searchLabel(r)), term) {
			continue
		}
		if status != "" && Classify(r) != status {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterPlants keeps plants with the given status; empty keeps all.
func FilterPlants(plants []models.PlantLocation, status models.PlantStatus) []models.PlantLocation {
	out := make([]models.PlantLocation, 0, len(plants))
	for _, p := range plants {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

// FilterTweets matches term against plant name and content, and emotion
// exactly. "all" or empty emotion keeps every emotion.
func FilterTweets(tweets []models.PlantTweet, term string, emotion string) []models.PlantTweet {
	term = strings.ToLower(term)
	emotion = strings.ToLower(emotion)
	out := make([]models.PlantTweet, 0, len(tweets))
	for _, t := range tweets {
		matches := strings.Contains(strings.ToLower(t.PlantName), term) ||
			strings.Contains(strings.ToLower(t.Content), term)
		if !matches {
			continue
		}
		if emotion != "" && emotion != "all" && string(t.Emotion) != emotion {
			continue
		}
		out = append(out, t)
	}
	return out
}
