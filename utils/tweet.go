package utils

import (
	"fmt"

	"github.com/elyashium/sylvan-web/models"
)

// EmotionFor picks the tweet emotion for a reading.
func EmotionFor(r models.SensorReading) models.Emotion {
	switch Classify(r) {
	case models.SeverityError:
		return models.EmotionAngry
	case models.SeverityWarning:
		if vs := Violations(r); len(vs) == 1 && vs[0].Metric == models.MetricVibration {
			return models.EmotionAnxious
		}
		return models.EmotionStressed
	default:
		return models.EmotionHappy
	}
}

// GenerateTweet writes a deterministic status message for a reading.
// The same reading always produces the same tweet.
func GenerateTweet(r models.SensorReading, plantName string) models.PlantTweet {
	emotion := EmotionFor(r)
	coord, _ := ResolveLocation(r)
	return models.PlantTweet{
		ID:        "tweet-" + r.ID,
		PlantID:   r.ID,
		PlantName: plantName,
		Content:   tweetContent(r, emotion),
		Emotion:   emotion,
		Timestamp: r.ObservedAt(),
		Location:  coord,
	}
}

func tweetContent(r models.SensorReading, emotion models.Emotion) string {
	if !HasMeasurements(r) {
		return "Hello? Is anyone there? I can't feel a thing. #SensorDown"
	}
	vs := Violations(r)
	switch emotion {
	case models.EmotionHappy:
		return "Feeling pretty good today! Everything is just right. #PlantLife"
	case models.EmotionAnxious:
		return "Did the ground just move? Something keeps shaking me. #Nervous"
	}
	if len(vs) == 0 {
		return "Something feels off today. #PlantProblems"
	}
	v := vs[0]
	switch v.Metric {
	case models.MetricTemperature:
		if RangeNote(v.Metric, v.Value) == "Above normal range" {
			return fmt.Sprintf("It's %.1f°C in here and I'm wilting! #TooHot", v.Value)
		}
		return fmt.Sprintf("Brr, %.1f°C. My leaves are freezing! #TooCold", v.Value)
	case models.MetricHumidity:
		if RangeNote(v.Metric, v.Value) == "Above normal range" {
			return fmt.Sprintf("%.0f%% humidity. I feel like I'm in a swamp. #TooHumid", v.Value)
		}
		return fmt.Sprintf("Only %.0f%% humidity. My leaves are crisping up. #TooDry", v.Value)
	default:
		return fmt.Sprintf("Soil moisture at %.0f%%. Is anyone going to water me? #Thirsty", v.Value)
	}
}
