package utils

import (
	"testing"

	"github.com/elyashium/sylvan-web/models"
)

func reading(temp, hum, soil *float64, vib *bool) models.SensorReading {
	return models.SensorReading{
		ID:           "r",
		Temperature:  temp,
		Humidity:     hum,
		SoilMoisture: soil,
		Vibration:    vib,
		CreatedAt:    "2025-05-20T06:25:30.682Z",
		UpdatedAt:    "2025-05-20T06:25:30.682Z",
	}
}

func TestClassify(t *testing.T) {
	f, b := models.Float, models.Bool
	tests := []struct {
		name string
		r    models.SensorReading
		want models.Severity
	}{
		{"no measurements", reading(nil, nil, nil, nil), models.SeverityError},
		{"no measurements but vibration", reading(nil, nil, nil, b(true)), models.SeverityError},
		{"normal", reading(f(22), f(50), f(50), b(false)), models.SeverityNormal},
		{"warm", reading(f(32), f(50), f(50), b(false)), models.SeverityWarning},
		{"hot", reading(f(36), f(50), f(50), b(false)), models.SeverityError},
		{"cold", reading(f(4.9), f(50), f(50), b(false)), models.SeverityError},
		{"cool", reading(f(9), f(50), f(50), b(false)), models.SeverityWarning},
		{"temperature at error edge", reading(f(35), f(50), f(50), nil), models.SeverityWarning},
		{"temperature at warning edge", reading(f(30), f(50), f(50), nil), models.SeverityNormal},
		{"humid", reading(f(22), f(85), f(50), nil), models.SeverityWarning},
		{"soaked air", reading(f(22), f(91), f(50), nil), models.SeverityError},
		{"dry air", reading(f(22), f(9), f(50), nil), models.SeverityError},
		{"dryish air", reading(f(22), f(15), f(50), nil), models.SeverityWarning},
		{"thirsty", reading(f(22), f(50), f(15), nil), models.SeverityWarning},
		{"parched", reading(f(22), f(50), f(9.5), nil), models.SeverityError},
		{"wet soil has no upper limit", reading(f(22), f(50), f(100), nil), models.SeverityNormal},
		{"vibration only", reading(f(22), f(50), f(50), b(true)), models.SeverityWarning},
		{"explicit zero is measured", reading(f(0), nil, nil, nil), models.SeverityError},
		{"single normal field", reading(nil, f(50), nil, nil), models.SeverityNormal},
		{"error beats vibration", reading(f(40), f(50), f(50), b(true)), models.SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.r); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyErrorRanges(t *testing.T) {
	f := models.Float
	for _, temp := range []float64{35.01, 40, 100, 4.99, 0, -20} {
		if got := Classify(reading(f(temp), f(50), f(50), nil)); got != models.SeverityError {
			t.Errorf("temperature %v: got %s, want error", temp, got)
		}
	}
	for _, hum := range []float64{90.5, 100, 9.99, 0} {
		if got := Classify(reading(f(22), f(hum), f(50), nil)); got != models.SeverityError {
			t.Errorf("humidity %v: got %s, want error", hum, got)
		}
	}
	for _, soil := range []float64{9.99, 5, 0} {
		if got := Classify(reading(f(22), f(50), f(soil), nil)); got != models.SeverityError {
			t.Errorf("soil moisture %v: got %s, want error", soil, got)
		}
	}
}

func TestClassifyIsPure(t *testing.T) {
	r := reading(models.Float(32.1), models.Float(35.5), models.Float(18), models.Bool(false))
	first := Classify(r)
	for i := 0; i < 10; i++ {
		if got := Classify(r); got != first {
			t.Fatalf("call %d returned %s, first call returned %s", i, got, first)
		}
	}
}

func TestViolations(t *testing.T) {
	f, b := models.Float, models.Bool
	vs := Violations(reading(f(36), f(85), f(50), b(true)))
	want := []models.Violation{
		{Metric: models.MetricTemperature, Value: 36, Severity: models.SeverityError},
		{Metric: models.MetricHumidity, Value: 85, Severity: models.SeverityWarning},
		{Metric: models.MetricVibration, Value: 1, Severity: models.SeverityWarning},
	}
	if len(vs) != len(want) {
		t.Fatalf("got %d violations %+v, want %d", len(vs), vs, len(want))
	}
	for i := range want {
		if vs[i] != want[i] {
			t.Errorf("violation %d = %+v, want %+v", i, vs[i], want[i])
		}
	}

	if vs := Violations(reading(f(22), f(50), f(50), b(false))); len(vs) != 0 {
		t.Errorf("normal reading has violations %+v", vs)
	}
}

func TestRangeNote(t *testing.T) {
	tests := []struct {
		m    models.Metric
		v    float64
		want string
	}{
		{models.MetricTemperature, 31, "Above normal range"},
		{models.MetricTemperature, 9, "Below normal range"},
		{models.MetricTemperature, 20, "Normal range"},
		{models.MetricHumidity, 81, "Above normal range"},
		{models.MetricSoilMoisture, 95, "Optimal level"},
		{models.MetricSoilMoisture, 12, "Below optimal level"},
		{models.MetricVibration, 1, ""},
	}
	for _, tt := range tests {
		if got := RangeNote(tt.m, tt.v); got != tt.want {
			t.Errorf("RangeNote(%s, %v) = %q, want %q", tt.m, tt.v, got, tt.want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]models.Severity{
		"":        "",
		"all":     "",
		"Warning": models.SeverityWarning,
		" error ": models.SeverityError,
		"normal":  models.SeverityNormal,
	} {
		got, err := ParseSeverity(in)
		if err != nil || got != want {
			t.Errorf("ParseSeverity(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseSeverity("critical"); err == nil {
		t.Error("ParseSeverity(critical) succeeded, want error")
	}
}
