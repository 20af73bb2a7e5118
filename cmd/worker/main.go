package main

import (
	"context"
	"log"
	"os"
	"stylistapi/dbhelper"
	"stylistapi/outfitgen"
	"stylistapi/services"
	"stylistapi/tasks"

	firebase "firebase.google.com/go/v4"
	"github.com/hibiken/asynq"
)

func main() {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: services.GetEnv("REDIS_ADDR", "localhost:6379")},
		asynq.Config{Concurrency: 10, Queues: map[string]int{
			"analyze": 7,
		}},
	)

	app, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		log.Fatalf("error initializing firebase app: %v\n", err)
		return
	}

	stylist, err := services.NewGeminiStylist(context.Background(), os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		log.Fatalf("error initializing gemini client: %v\n", err)
	}
	generator := outfitgen.NewGenerator(stylist, outfitgen.Config{Model: services.Flash25.String()})

	db := dbhelper.SetupDB()
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeWardrobeAnalysis, func(ctx context.Context, t *asynq.Task) error {
		return tasks.HandleWardrobeAnalysisTask(ctx, t, db, generator, app)
	})

	log.Println("[Queue] Worker starting")
	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run asynq server: %v", err)
	}
}
