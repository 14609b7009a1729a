package main

import (
	"os"
	"time"

	"github.com/forestfirst/gatecrash/internal/api"
	"github.com/forestfirst/gatecrash/internal/config"
	"github.com/forestfirst/gatecrash/internal/constants"
	"github.com/forestfirst/gatecrash/internal/game"
	"github.com/forestfirst/gatecrash/internal/logging"
	"github.com/forestfirst/gatecrash/internal/service"
	"github.com/forestfirst/gatecrash/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load the catalog configuration file (required). Path may be provided
	// via GATECRASH_CONFIG or defaults to ./config.json in the current
	// working directory.
	configPath := os.Getenv(constants.EnvConfigFile)
	if configPath == "" {
		configPath = constants.DefaultConfigFile
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid catalog configuration", err, logging.Fields{
			"config_path": configPath,
			"hint":        "create a config.json with 'weapon_list', 'attachment_list' and 'enemy_list' arrays and optional keys: server.address, balance_file",
		})
	}

	// Balance tuning is optional; defaults apply when no file is named.
	balancePath := os.Getenv(constants.EnvBalanceFile)
	if balancePath == "" {
		balancePath = cfg.BalanceFile
	}
	bal, err := config.LoadBalance(balancePath)
	if err != nil {
		logging.Fatal("Invalid balance configuration", err, logging.Fields{"balance_path": balancePath})
	}

	// Allow the DB path to be configured via GATECRASH_DB.
	dbPath := os.Getenv(constants.EnvDatabasePath)
	if dbPath == "" {
		dbPath = constants.DefaultDatabasePath
	}
	db, err := storage.OpenAndMigrate(dbPath, cfg.Weapons, cfg.Attachments, cfg.Enemies)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db, cfg.Weapons, cfg.Attachments, cfg.Enemies)

	pub := game.NewPublisher()
	hub := api.NewEventHub()
	pub.Subscribe(hub)

	rt := service.NewRuntime(repo, cfg, bal, nil, pub)
	handler := api.NewBattleHandler(rt, repo)

	// Background scanner: periodically abandon battles whose action
	// deadline has passed. Disabled when no timeout is configured.
	if rt.ActionTimeout > 0 {
		go func() {
			ticker := time.NewTicker(1 * time.Second)
			defer ticker.Stop()
			for range ticker.C {
				battles, err := repo.FindTimedOutBattles(time.Now())
				if err != nil {
					logging.Warn("timeout scanner failed", err, nil)
					continue
				}
				for i := range battles {
					b, err := repo.FindBattleByJoinCode(battles[i].JoinCode)
					if err != nil {
						continue
					}
					if err := rt.HandleTimedOutBattle(b); err != nil {
						logging.Error("failed to expire battle", err, logging.Fields{constants.LogFieldBattleCode: b.JoinCode})
					}
				}
			}
		}()
	}

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteWeapons, handler.ListWeapons)
		apiRoutes.GET(constants.RouteAttachmentsAll, handler.ListAttachments)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteEvents, handler.Subscribe(hub))

		apiRoutes.POST(constants.RouteBattles, handler.CreateBattle)
		apiRoutes.GET(constants.RouteBattleByCode, handler.GetBattle)
		apiRoutes.GET(constants.RouteBattleHand, handler.GetHand)
		apiRoutes.POST(constants.RouteBattlePlay, handler.PlayCard)
		apiRoutes.POST(constants.RouteBattlePreview, handler.PreviewCard)
		apiRoutes.DELETE(constants.RouteBattlePreview, handler.ClearPreview)
		apiRoutes.POST(constants.RouteBattleEndTurn, handler.EndTurn)
		apiRoutes.POST(constants.RouteBattleAbandon, handler.AbandonBattle)

		apiRoutes.GET(constants.RouteBattleOptions, handler.AttachmentOptions)
		apiRoutes.POST(constants.RouteBattleEquip, handler.EquipAttachment)
		apiRoutes.DELETE(constants.RouteBattleSlot, handler.DetachAttachment)
		apiRoutes.POST(constants.RouteBattleSlotEnhance, handler.EnhanceAttachment)
	}

	// Start server on configured address; GATECRASH_ADDR wins over config.
	addr := os.Getenv(constants.EnvServerAddress)
	if addr == "" {
		addr = cfg.ServerAddress
	}
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
