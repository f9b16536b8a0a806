package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cartloom/cartloom/internal/config"
	"github.com/cartloom/cartloom/internal/server"
	"github.com/cartloom/cartloom/internal/service"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the storefront and admin API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, dev)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP listen port (overrides config)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP listen host (overrides config)")
	cmd.Flags().BoolVar(&dev, "dev", false, "Development mode (debug logging)")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))

	return cmd
}

func runServe(host string, port int, dev bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if dev {
		cfg.Logging.Level = "debug"
	}

	logger := newLogger(cfg.Logging)

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	logger.Info("database ready", "driver", cfg.Database.Driver)

	uploads, err := newUploadStorage(context.Background(), cfg.Uploads)
	if err != nil {
		st.Close()
		return fmt.Errorf("init uploads: %w", err)
	}

	jwtSecret := cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "cartloom-dev-secret-change-me"
		logger.Warn("auth.jwt_secret not set, using the development default")
	}
	authSvc := service.NewAuthService(st, jwtSecret)

	hasAdmin, err := st.HasAdmins(context.Background())
	if err != nil {
		logger.Warn("failed to check for admin accounts", "error", err)
	}
	if !hasAdmin {
		logger.Warn("no admin account found, run: cartloom admin create")
	}

	srvCfg := server.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ShutdownTimeout: config.Duration(cfg.Server.ShutdownTimeout, 30*time.Second),
		CORSOrigins:     cfg.Server.CORSOrigins,
		PublicRateLimit: cfg.Server.PublicRateLimit,
	}
	srv := server.New(srvCfg, st, authSvc, uploads, logger)

	fmt.Printf("→ Cartloom listening on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ Storefront API: http://%s:%d/api/products\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ Admin API:      http://%s:%d/admin/api\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ Health:         http://%s:%d/healthz\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Println()

	return srv.ListenAndServe()
}
