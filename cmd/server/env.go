package main

import (
	"log"
	"os"
	"strconv"
)

type Environment struct {
	Environment    string
	ServerAddress  string
	SecretKey      string
	DatabaseURL    string
	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string
	DeviceID      string

	AssetsDir     string
	PlayerCommand string
	GeocoderURL   string

	// optional fixed device position for auto mode
	DeviceLat *float64
	DeviceLng *float64
}

// LoadEnvironment reads and validates env vars
func LoadEnvironment() Environment {
	env := Environment{
		Environment:    os.Getenv("APP_ENV"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SecretKey:      os.Getenv("JWT_SECRET"),
		ServerAddress:  os.Getenv("SERVER_ADDRESS"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),
		DeviceID:      os.Getenv("DEVICE_ID"),

		AssetsDir:     os.Getenv("SOUND_ASSETS_DIR"),
		PlayerCommand: os.Getenv("PLAYER_COMMAND"),
		GeocoderURL:   os.Getenv("GEOCODER_URL"),

		DeviceLat: envFloat("DEVICE_LAT"),
		DeviceLng: envFloat("DEVICE_LNG"),
	}

	if env.DatabaseURL == "" || env.SecretKey == "" || env.ServerAddress == "" {
		log.Fatal("Missing required environment variables")
	}
	if env.MigrationsPath == "" {
		env.MigrationsPath = "./migrations"
	}
	if env.MQTTBrokerURL == "" {
		env.MQTTBrokerURL = "tcp://0.0.0.0:1883"
	}
	if env.DeviceID == "" {
		env.DeviceID = "default"
	}
	if env.AssetsDir == "" {
		env.AssetsDir = "./sounds"
	}
	if env.GeocoderURL == "" {
		env.GeocoderURL = "https://nominatim.openstreetmap.org"
	}

	return env
}

func envFloat(key string) *float64 {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return &f
}
