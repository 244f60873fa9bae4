package main

import (
	"os"

	"github.com/DRSN-tech/okna-shop/internal/app"
	config "github.com/DRSN-tech/okna-shop/internal/cfg"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
)

//	@title			Окна-Шоп API
//	@version		1.0
//	@description	Каталог, калькулятор стоимости и корзина магазина комплектующих для окон.
//	@BasePath		/api/v1

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
