package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/stayvault/stayvault/internal/adapter"
	"github.com/stayvault/stayvault/internal/config"
	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("stayvault-lockagent")
	cfg, err := config.GetAgentConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if len(cfg.Adapter.Addresses) == 0 {
		log.Fatal().Msg("no escrow addresses configured")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server adapter")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	agentUser := models.User{Login: cfg.Adapter.Login, Password: cfg.Adapter.Password}
	if _, err = serverAdapter.Login(ctx, agentUser); err != nil {
		log.Fatal().Err(err).Msg("agent login failed")
	}
	log.Info().Str("login", cfg.Adapter.Login).Msg("agent authenticated")

	a := newAgent(serverAdapter, cfg.Adapter.Addresses, log)
	a.run(ctx, cfg.Adapter.PollInterval)

	log.Info().Msg("lock agent stopped")
}

// agent polls the access codes of a fixed set of escrows and reprograms the
// door locks whenever a new code is issued.
type agent struct {
	server    adapter.ServerAdapter
	addresses []string
	lastNonce map[string]uint64
	logger    *logger.Logger
}

func newAgent(server adapter.ServerAdapter, addresses []string, log *logger.Logger) *agent {
	return &agent{
		server:    server,
		addresses: addresses,
		lastNonce: make(map[string]uint64),
		logger:    log,
	}
}

func (a *agent) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.poll(ctx)
		}
	}
}

func (a *agent) poll(ctx context.Context) {
	for _, address := range a.addresses {
		code, err := a.server.CurrentAccessCode(ctx, address)
		if err != nil {
			// a vacant escrow has no current code
			a.logger.Debug().Err(err).Str("address", address).Msg("no current access code")
			continue
		}

		if last, seen := a.lastNonce[address]; seen && last == code.Nonce {
			continue
		}
		a.lastNonce[address] = code.Nonce

		a.programLock(address, code)
	}
}

// programLock pushes the freshly issued code to the door lock at address.
// The hardware integration is site-specific; the default build logs the
// rotation.
func (a *agent) programLock(address string, code models.AccessCodeResponse) {
	a.logger.Info().
		Str("address", address).
		Uint64("nonce", code.Nonce).
		Msg("access code rotated, reprogramming lock")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
