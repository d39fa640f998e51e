package main

import (
	"fmt"
	"log"

	"github.com/ranayash24/formbricks/api/handlers"
	"github.com/ranayash24/formbricks/pkg/config"
	"github.com/ranayash24/formbricks/pkg/repository"
	"github.com/ranayash24/formbricks/pkg/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := repository.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	h := handlers.New(
		service.NewEnvironmentService(db),
		service.NewSurveyService(db, cfg.Public.URL),
		service.NewResponseService(db),
		service.NewTagService(db),
		service.NewAPIKeyService(db),
	)

	r := handlers.NewRouter(h)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
