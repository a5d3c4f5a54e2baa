package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-finder/internal/api"
	"recipe-finder/internal/core/finder"
	"recipe-finder/internal/core/session"
	"recipe-finder/internal/core/spoonacular"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"
	"recipe-finder/internal/ui/terminal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後），終端模式下不輸出到主控台
	if err := common.InitLogger(common.LoggerOptions{
		Level:   cfg.Log.Level,
		Dir:     cfg.Log.Dir,
		Console: cfg.Log.Console || cfg.App.Mode == config.ModeHTTP,
	}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("mode", cfg.App.Mode),
		zap.String("spoonacular_key", common.MaskAPIKey(cfg.Spoonacular.APIKey)),
		zap.String("shopping_list", cfg.ShoppingList.Path),
	)

	client := spoonacular.NewClient(&cfg.Spoonacular)
	defer client.Close()

	writer := spoonacular.NewShoppingListWriter(cfg.ShoppingList.Path)
	controller := finder.NewController(client, writer)

	switch cfg.App.Mode {
	case config.ModeHTTP:
		if err := serveHTTP(cfg, controller); err != nil {
			common.LogError("Server stopped with error", zap.Error(err))
			common.Sync()
			os.Exit(1)
		}
	default:
		form := terminal.NewForm(controller, cfg.Vocabulary, os.Stdin, os.Stdout)
		if err := form.Run(context.Background()); err != nil {
			common.LogError("Form stopped with error", zap.Error(err))
			fmt.Printf("Error: %v\n", err)
			common.Sync()
			os.Exit(1)
		}
	}
}

// serveHTTP 以 HTTP 表單後端模式執行，直到收到中斷信號
func serveHTTP(cfg *config.Config, controller *finder.Controller) error {
	sessions, err := session.NewStore(&cfg.Session)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	defer sessions.Close()

	router, err := api.SetupRouter(cfg, controller, sessions)
	if err != nil {
		return fmt.Errorf("failed to setup router: %w", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-quit:
	}

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	common.LogInfo("Server exited")
	return nil
}
