package store

import "github.com/elyashium/sylvan-web/models"

func demoReadings() []models.SensorReading {
	f, b := models.Float, models.Bool
	return []models.SensorReading{
		{
			ID:           "683c9c4e8b509b8198b641fb",
			Temperature:  f(24.6),
			Humidity:     f(45.8),
			SoilMoisture: f(38),
			Vibration:    b(false),
			Location:     models.GPS(28.6139, 77.209),
			CreatedAt:    "2025-06-01T18:30:38.006Z",
			UpdatedAt:    "2025-06-01T18:30:38.006Z",
		},
		{
			ID:           "682c205a231b049790f55e96",
			Temperature:  f(26.4),
			Humidity:     f(55.2),
			SoilMoisture: f(42),
			Vibration:    b(true),
			Location:     models.GPS(28.5139, 77.309),
			CreatedAt:    "2025-05-20T06:25:30.682Z",
			UpdatedAt:    "2025-05-20T06:25:30.682Z",
		},
		{
			ID:           "682c19fd2249cda57539e564",
			Temperature:  f(32.1),
			Humidity:     f(35.5),
			SoilMoisture: f(18),
			Vibration:    b(false),
			Location:     models.Geo(28.7139, 77.109),
			Timestamp:    "2025-05-20T05:58:21.715Z",
			CreatedAt:    "2025-05-20T05:58:21.716Z",
			UpdatedAt:    "2025-05-20T05:58:21.716Z",
		},
		{
			ID:           "682c19fd2249cda57539e565",
			Temperature:  f(22.3),
			Humidity:     f(62.7),
			SoilMoisture: f(45),
			Vibration:    b(false),
			Location:     models.Geo(28.4139, 77.409),
			Timestamp:    "2025-05-19T14:23:11.315Z",
			CreatedAt:    "2025-05-19T14:23:11.316Z",
			UpdatedAt:    "2025-05-19T14:23:11.316Z",
		},
		{
			ID:           "682c19fd2249cda57539e566",
			Temperature:  f(18.9),
			Humidity:     f(70.2),
			SoilMoisture: f(60),
			Vibration:    b(false),
			Location:     models.GPS(28.3139, 77.509),
			CreatedAt:    "2025-05-18T09:45:20.121Z",
			UpdatedAt:    "2025-05-18T09:45:20.121Z",
		},
		{
			ID:           "682c19fd2249cda57539e567",
			Temperature:  f(29.5),
			Humidity:     f(40.8),
			SoilMoisture: f(25),
			Vibration:    b(true),
			Location:     models.Geo(28.8139, 77.009),
			Timestamp:    "2025-05-17T11:32:45.518Z",
			CreatedAt:    "2025-05-17T11:32:45.519Z",
			UpdatedAt:    "2025-05-17T11:32:45.519Z",
		},
	}
}

func demoPlants() []models.PlantLocation {
	return []models.PlantLocation{
		{ID: "1", Name: "Monstera Deliciosa", Lat: 37.7749, Lng: -122.4194, Status: models.PlantHealthy, Type: "Indoor", LastUpdated: "2 minutes ago"},
		{ID: "2", Name: "Snake Plant", Lat: 37.7695, Lng: -122.4268, Status: models.PlantWarning, Type: "Indoor", LastUpdated: "15 minutes ago"},
		{ID: "3", Name: "Fiddle Leaf Fig", Lat: 37.7835, Lng: -122.4089, Status: models.PlantCritical, Type: "Indoor", LastUpdated: "1 hour ago"},
		{ID: "4", Name: "Tomato Plant", Lat: 37.7845, Lng: -122.4300, Status: models.PlantHealthy, Type: "Outdoor", LastUpdated: "5 minutes ago"},
		{ID: "5", Name: "Basil", Lat: 37.7855, Lng: -122.4100, Status: models.PlantWarning, Type: "Outdoor", LastUpdated: "30 minutes ago"},
		{ID: "6", Name: "Peace Lily", Lat: 37.7775, Lng: -122.4150, Status: models.PlantHealthy, Type: "Indoor", LastUpdated: "10 minutes ago"},
	}
}

func demoPlantDetails() []models.PlantDetails {
	return []models.PlantDetails{
		{
			ID:           "1",
			Name:         "Monstera Deliciosa",
			Type:         "Indoor",
			Species:      "Monstera deliciosa",
			Location:     models.PlantSite{Name: "Living Room", Lat: 37.7749, Lng: -122.4194},
			Status:       models.PlantHealthy,
			LastWatered:  "2023-06-15T08:30:00Z",
			NextWatering: "2023-06-18T08:30:00Z",
			SensorData: models.PlantSensorData{
				Timestamp: "2023-06-15T14:30:00Z", Temperature: 22.5, Humidity: 65,
				SoilMoisture: 78, LightLevel: 850, WaterLevel: 68,
			},
			Tweets: []models.PlantPost{
				{Content: "Feeling pretty good today! My human remembered to water me on time. #PlantLife", Timestamp: "2023-06-15T09:00:00Z"},
				{Content: "Getting some nice indirect sunlight. Perfect for showing off my new leaf! #GrowthSpurt", Timestamp: "2023-06-14T11:30:00Z"},
			},
			History: []models.PlantEvent{
				{Date: "2023-06-15", Event: "Watered"},
				{Date: "2023-06-10", Event: "Fertilized"},
				{Date: "2023-06-08", Event: "Watered"},
			},
		},
		{
			ID:           "2",
			Name:         "Snake Plant",
			Type:         "Indoor",
			Species:      "Sansevieria trifasciata",
			Location:     models.PlantSite{Name: "Bedroom", Lat: 37.7695, Lng: -122.4268},
			Status:       models.PlantWarning,
			LastWatered:  "2023-06-01T10:15:00Z",
			NextWatering: "2023-06-16T10:15:00Z",
			SensorData: models.PlantSensorData{
				Timestamp: "2023-06-15T14:30:00Z", Temperature: 24.2, Humidity: 45,
				SoilMoisture: 32, LightLevel: 550, WaterLevel: 35,
			},
			Tweets: []models.PlantPost{
				{Content: "Is anyone going to water me soon or should I just give up? #Thirsty", Timestamp: "2023-06-15T08:45:00Z"},
				{Content: "I'm a snake plant. I can survive neglect, but that doesn't mean I enjoy it. #PlantNeglect", Timestamp: "2023-06-12T14:20:00Z"},
			},
			History: []models.PlantEvent{
				{Date: "2023-06-01", Event: "Watered"},
				{Date: "2023-05-15", Event: "Watered"},
				{Date: "2023-05-10", Event: "Repotted"},
			},
		},
		{
			ID:           "3",
			Name:         "Fiddle Leaf Fig",
			Type:         "Indoor",
			Species:      "Ficus lyrata",
			Location:     models.PlantSite{Name: "Office", Lat: 37.7835, Lng: -122.4089},
			Status:       models.PlantCritical,
			LastWatered:  "2023-05-25T09:00:00Z",
			NextWatering: "2023-06-01T09:00:00Z",
			SensorData: models.PlantSensorData{
				Timestamp: "2023-06-15T14:30:00Z", Temperature: 26.1, Humidity: 30,
				SoilMoisture: 15, LightLevel: 350, WaterLevel: 10,
			},
			Tweets: []models.PlantPost{
				{Content: "HELP! I'm so thirsty I can barely photosynthesize! #Dying #NeedWater", Timestamp: "2023-06-15T07:30:00Z"},
				{Content: "My leaves are drooping. Is anyone even paying attention? #PlantNeglect", Timestamp: "2023-06-13T16:45:00Z"},
			},
			History: []models.PlantEvent{
				{Date: "2023-05-25", Event: "Watered"},
				{Date: "2023-05-18", Event: "Watered"},
				{Date: "2023-05-05", Event: "Repotted"},
			},
		},
		{
			ID:           "4",
			Name:         "Tomato Plant",
			Type:         "Outdoor",
			Species:      "Solanum lycopersicum",
			Location:     models.PlantSite{Name: "Garden", Lat: 37.7845, Lng: -122.4300},
			Status:       models.PlantHealthy,
			LastWatered:  "2023-06-14T08:00:00Z",
			NextWatering: "2023-06-16T08:00:00Z",
			SensorData: models.PlantSensorData{
				Timestamp: "2023-06-15T14:30:00Z", Temperature: 23.8, Humidity: 55,
				SoilMoisture: 65, LightLevel: 1200, WaterLevel: 80,
			},
			Tweets: []models.PlantPost{
				{Content: "Soaking up the sun and growing some delicious tomatoes! #GardenLife", Timestamp: "2023-06-15T11:20:00Z"},
				{Content: "Rain yesterday was refreshing. Ready for another sunny day! #HappyPlant", Timestamp: "2023-06-14T09:15:00Z"},
			},
			History: []models.PlantEvent{
				{Date: "2023-06-14", Event: "Watered"},
				{Date: "2023-06-10", Event: "Fertilized"},
				{Date: "2023-06-07", Event: "Watered"},
			},
		},
	}
}

func demoTweets() []models.PlantTweet {
	return []models.PlantTweet{
		{ID: "1", PlantID: "1", PlantName: "Monstera Deliciosa", Emotion: models.EmotionHappy, Timestamp: "2023-06-15T09:00:00Z",
			Content:  "Feeling pretty good today! My human remembered to water me on time. #PlantLife",
			Location: models.Coordinate{Lat: 37.7749, Lng: -122.4194}},
		{ID: "2", PlantID: "2", PlantName: "Snake Plant", Emotion: models.EmotionAngry, Timestamp: "2023-06-15T08:45:00Z",
			Content:  "Is anyone going to water me soon or should I just give up? #Thirsty",
			Location: models.Coordinate{Lat: 37.7695, Lng: -122.4268}},
		{ID: "3", PlantID: "3", PlantName: "Fiddle Leaf Fig", Emotion: models.EmotionStressed, Timestamp: "2023-06-15T07:30:00Z",
			Content:  "HELP! I'm so thirsty I can barely photosynthesize! #Dying #NeedWater",
			Location: models.Coordinate{Lat: 37.7835, Lng: -122.4089}},
		{ID: "4", PlantID: "4", PlantName: "Tomato Plant", Emotion: models.EmotionHappy, Timestamp: "2023-06-15T11:20:00Z",
			Content:  "Soaking up the sun and growing some delicious tomatoes! #GardenLife",
			Location: models.Coordinate{Lat: 37.7845, Lng: -122.4300}},
		{ID: "5", PlantID: "5", PlantName: "Basil", Emotion: models.EmotionAnxious, Timestamp: "2023-06-15T10:05:00Z",
			Content:  "Someone keeps eyeing my leaves for a pesto. Should I be worried? #Nervous",
			Location: models.Coordinate{Lat: 37.7855, Lng: -122.4100}},
		{ID: "6", PlantID: "6", PlantName: "Peace Lily", Emotion: models.EmotionHappy, Timestamp: "2023-06-14T18:40:00Z",
			Content:  "New bloom just opened. Living my best life. #Blooming",
			Location: models.Coordinate{Lat: 37.7775, Lng: -122.4150}},
		{ID: "7", PlantID: "3", PlantName: "Fiddle Leaf Fig", Emotion: models.EmotionAnxious, Timestamp: "2023-06-13T16:45:00Z",
			Content:  "My leaves are drooping. Is anyone even paying attention? #PlantNeglect",
			Location: models.Coordinate{Lat: 37.7835, Lng: -122.4089}},
	}
}
