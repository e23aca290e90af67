package main

import (
	"github.com/d7708945/scammail/internal/config"
	clog "github.com/d7708945/scammail/internal/log"
	"github.com/d7708945/scammail/internal/server"
	"github.com/d7708945/scammail/internal/store"
	"github.com/d7708945/scammail/internal/ws"

	"github.com/rs/zerolog/log"
)

func main() {
	// main 函数负责加载配置、初始化日志、构建内存存储并启动 Gin 服务。
	cfg := config.Load()
	clog.Init(cfg.Env)
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("config validate")
	}

	st := store.New()
	hub := ws.NewHub()
	r := server.SetupRouter(cfg, st, hub)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("relay listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server run")
	}
}
