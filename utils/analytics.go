package utils

import (
	"sort"

	"github.com/elyashium/sylvan-web/models"
)

// Slice is one named value of a breakdown chart.
type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color,omitempty"`
}

// Conditions are averaged environmental values.
type Conditions struct {
	Temperature  float64 `json:"temperature"`
	Humidity     float64 `json:"humidity"`
	SoilMoisture float64 `json:"soilMoisture"`
}

// Optimal reports whether all three averages sit inside the comfort band.
func (c Conditions) Optimal() bool {
	return c.Temperature > 20 && c.Temperature < 28 &&
		c.Humidity > 40 && c.Humidity < 70 &&
		c.SoilMoisture > 30 && c.SoilMoisture < 60
}

// LocationSummary aggregates the plants sharing a site name.
type LocationSummary struct {
	Name         string     `json:"name"`
	PlantCount   int        `json:"plantCount"`
	Healthy      int        `json:"healthyCount"`
	Warning      int        `json:"warningCount"`
	Critical     int        `json:"criticalCount"`
	Average      Conditions `json:"averageConditions"`
	OptimalScore int        `json:"optimalConditions"`
}

// SeriesPoint is one row of the time-series charts.
type SeriesPoint struct {
	Timestamp    string   `json:"timestamp"`
	Temperature  *float64 `json:"temperature,omitempty"`
	Humidity     *float64 `json:"humidity,omitempty"`
	SoilMoisture *float64 `json:"soilMoisture,omitempty"`
}

// Analytics is the payload behind the analytics page.
type Analytics struct {
	Health    []Slice           `json:"health"`
	Plants    []Slice           `json:"plantHealth"`
	Emotions  []Slice           `json:"emotions"`
	Activity  []Slice           `json:"activity"`
	Locations []LocationSummary `json:"locations"`
	Selected  *LocationSummary  `json:"selected,omitempty"`
	Series    []SeriesPoint     `json:"series"`
}

// AllLocations selects the aggregate of every site.
const AllLocations = "all"

// BuildAnalytics derives every chart from the provided data. selected is a
// site name, AllLocations, or empty; an unknown name leaves Selected nil.
func BuildAnalytics(readings []models.SensorReading, plants []models.PlantLocation, details []models.PlantDetails, tweets []models.PlantTweet, selected string) Analytics {
	a := Analytics{
		Health:    severityBreakdown(readings),
		Plants:    plantBreakdown(plants),
		Emotions:  emotionBreakdown(tweets),
		Activity:  activityBreakdown(details),
		Locations: SummarizeLocations(details),
		Series:    Series(readings),
	}
	if selected == "" {
		selected = AllLocations
	}
	a.Selected = SelectLocation(a.Locations, selected)
	return a
}

func severityBreakdown(readings []models.SensorReading) []Slice {
	counts := map[models.Severity]int{}
	for _, r := range readings {
		counts[Classify(r)]++
	}
	tiers := []models.Severity{models.SeverityNormal, models.SeverityWarning, models.SeverityError}
	out := make([]Slice, 0, len(tiers))
	for _, s := range tiers {
		out = append(out, Slice{Name: s.Label(), Value: counts[s], Color: s.Color()})
	}
	return out
}

func plantBreakdown(plants []models.PlantLocation) []Slice {
	counts := map[models.PlantStatus]int{}
	for _, p := range plants {
		counts[p.Status]++
	}
	return []Slice{
		{Name: "Healthy", Value: counts[models.PlantHealthy], Color: models.SeverityNormal.Color()},
		{Name: "Warning", Value: counts[models.PlantWarning], Color: models.SeverityWarning.Color()},
		{Name: "Critical", Value: counts[models.PlantCritical], Color: models.SeverityError.Color()},
	}
}

var emotionColors = map[models.Emotion]string{
	models.EmotionHappy:    "#34D399",
	models.EmotionAngry:    "#F87171",
	models.EmotionStressed: "#FBBF24",
	models.EmotionAnxious:  "#60A5FA",
}

func emotionBreakdown(tweets []models.PlantTweet) []Slice {
	counts := map[models.Emotion]int{}
	for _, t := range tweets {
		counts[t.Emotion]++
	}
	out := make([]Slice, 0, len(models.Emotions))
	for _, e := range models.Emotions {
		out = append(out, Slice{Name: string(e), Value: counts[e], Color: emotionColors[e]})
	}
	return out
}

func activityBreakdown(details []models.PlantDetails) []Slice {
	counts := map[string]int{}
	var order []string
	for _, d := range details {
		for _, h := range d.History {
			if _, seen := counts[h.Event]; !seen {
				order = append(order, h.Event)
			}
			counts[h.Event]++
		}
	}
	out := make([]Slice, 0, len(order))
	for _, name := range order {
		out = append(out, Slice{Name: name, Value: counts[name]})
	}
	return out
}

// SummarizeLocations groups plant details by site name in first-seen order.
func SummarizeLocations(details []models.PlantDetails) []LocationSummary {
	index := map[string]int{}
	var out []LocationSummary
	var sums []Conditions
	for _, d := range details {
		i, ok := index[d.Location.Name]
		if !ok {
			i = len(out)
			index[d.Location.Name] = i
			out = append(out, LocationSummary{Name: d.Location.Name})
			sums = append(sums, Conditions{})
		}
		s := &out[i]
		s.PlantCount++
		switch d.Status {
		case models.PlantHealthy:
			s.Healthy++
		case models.PlantWarning:
			s.Warning++
		case models.PlantCritical:
			s.Critical++
		}
		sums[i].Temperature += d.SensorData.Temperature
		sums[i].Humidity += d.SensorData.Humidity
		sums[i].SoilMoisture += d.SensorData.SoilMoisture
	}
	for i := range out {
		n := float64(out[i].PlantCount)
		out[i].Average = Conditions{
			Temperature:  sums[i].Temperature / n,
			Humidity:     sums[i].Humidity / n,
			SoilMoisture: sums[i].SoilMoisture / n,
		}
		out[i].OptimalScore = optimalScore(out[i].Average)
	}
	return out
}

func optimalScore(c Conditions) int {
	if c.Optimal() {
		return 100
	}
	return 50
}

// SelectLocation returns the named summary, or for AllLocations the sum of
// counts and the mean of the per-site averages. Nil when nothing matches.
func SelectLocation(summaries []LocationSummary, name string) *LocationSummary {
	if name != AllLocations {
		for _, s := range summaries {
			if s.Name == name {
				s := s
				return &s
			}
		}
		return nil
	}
	if len(summaries) == 0 {
		return nil
	}
	all := LocationSummary{Name: "All Locations"}
	for _, s := range summaries {
		all.PlantCount += s.PlantCount
		all.Healthy += s.Healthy
		all.Warning += s.Warning
		all.Critical += s.Critical
		all.Average.Temperature += s.Average.Temperature
		all.Average.Humidity += s.Average.Humidity
		all.Average.SoilMoisture += s.Average.SoilMoisture
	}
	n := float64(len(summaries))
	all.Average.Temperature /= n
	all.Average.Humidity /= n
	all.Average.SoilMoisture /= n
	all.OptimalScore = optimalScore(all.Average)
	return &all
}

// Series orders readings oldest first for the line charts.
func Series(readings []models.SensorReading) []SeriesPoint {
	out := make([]SeriesPoint, 0, len(readings))
	for _, r := range readings {
		out = append(out, SeriesPoint{
			Timestamp:    r.ObservedAt(),
			Temperature:  r.Temperature,
			Humidity:     r.Humidity,
			SoilMoisture: r.SoilMoisture,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}
