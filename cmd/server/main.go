package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/captian10/adhan-engine/internal/alarm"
	"github.com/captian10/adhan-engine/internal/api"
	"github.com/captian10/adhan-engine/internal/db"
	"github.com/captian10/adhan-engine/internal/delivery"
	"github.com/captian10/adhan-engine/internal/location"
	"github.com/captian10/adhan-engine/internal/model"
	"github.com/captian10/adhan-engine/internal/prayer"
	"github.com/captian10/adhan-engine/internal/redis"
	"github.com/captian10/adhan-engine/internal/scheduler"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	env := LoadEnvironment()

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatalf("db init: %v", err)
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	mqttClient, err := alarm.NewMQTTClient(env.MQTTBrokerURL, "adhan-engine-"+env.DeviceID)
	if err != nil {
		log.Fatalf("mqtt init: %v", err)
	}

	store := db.NewStore()

	// delivery side: plays fired alarms in this process
	assets := &delivery.DirAssets{Dir: env.AssetsDir}
	player := delivery.NewExecPlayer(env.PlayerCommand)
	launcher := delivery.NewMQTTUILauncher(mqttClient, env.DeviceID)
	var guard delivery.OpenGuard = delivery.RedisGuard{}
	if env.RedisAddress == "" {
		guard = delivery.NewMemGuard()
	}
	session := delivery.NewSession(assets, player, guard, launcher)

	consumer := delivery.NewConsumer(mqttClient, env.DeviceID, session)
	if err := consumer.Subscribe(); err != nil {
		log.Fatalf("delivery consumer: %v", err)
	}

	// scheduling side
	dispatcher := alarm.NewMQTTDispatcher(mqttClient, env.DeviceID)
	dispatcher.SetStopper(session)

	var pos location.Positioner = &location.StaticPositioner{}
	if env.DeviceLat != nil && env.DeviceLng != nil {
		pos = &location.StaticPositioner{
			Coords: &model.Coordinates{Lat: *env.DeviceLat, Lng: *env.DeviceLng},
		}
	}
	resolver := location.NewResolver(store, pos, location.NewHTTPGeocoder(env.GeocoderURL))

	engine := scheduler.New(store, prayer.NewEgyptianCalculator(), resolver, dispatcher)

	// set up gin router
	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	RegisterRoutes(r, env, api.NewEngineController(engine, session, store))

	// start
	log.Printf("listening on %s", env.ServerAddress)
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
