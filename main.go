package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"chatrelay/config"
	"chatrelay/credstore"
	"chatrelay/server"
)

const controlSocketPath = "/tmp/chatrelay.sock"

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to initialize credential store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := seedUsers(store, cfg.SeedUsers); err != nil {
		logger.Error("failed to seed users", "error", err)
		os.Exit(1)
	}

	srv := server.New(store, &server.Config{
		Addr:             net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		HandshakeTimeout: time.Duration(cfg.HandshakeTimeout) * time.Second,
		WriteTimeout:     time.Duration(cfg.WriteTimeout) * time.Second,
		SendQueue:        cfg.SendQueue,
	}, logger)

	// Control socket for management commands
	go startControlSocket(srv, logger)

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("shutting down", "signal", sig.String())
		srv.Shutdown()
		os.Remove(controlSocketPath)
		os.Exit(0)
	}()

	if err := srv.Start(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (credstore.Store, error) {
	if cfg.DatabaseDSN != "" {
		return credstore.NewPostgres(context.Background(), cfg.DatabaseDSN)
	}
	return credstore.NewSQLite(cfg.DBPath)
}

// seedUsers creates the configured accounts if they do not exist yet.
// Format: "user:pass,user:pass".
func seedUsers(store credstore.Store, seed string) error {
	if seed == "" {
		return nil
	}

	ctx := context.Background()
	for _, pair := range strings.Split(seed, ",") {
		username, password, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || username == "" || password == "" {
			return fmt.Errorf("malformed seed entry %q", pair)
		}

		err := store.Register(ctx, username, password)
		if err != nil && !errors.Is(err, credstore.ErrUsernameTaken) {
			return err
		}
	}
	return nil
}

func startControlSocket(srv *server.Server, logger *slog.Logger) {
	os.Remove(controlSocketPath)

	listener, err := net.Listen("unix", controlSocketPath)
	if err != nil {
		logger.Error("failed to create control socket", "error", err)
		return
	}
	defer listener.Close()
	defer os.Remove(controlSocketPath)

	logger.Info("control socket listening", "path", controlSocketPath)

	for {
		conn, err := listener.Accept()
		if err != nil {
			continue
		}

		go handleControlCommand(srv, conn, logger)
	}
}

func handleControlCommand(srv *server.Server, conn net.Conn, logger *slog.Logger) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	if err != nil {
		return
	}

	switch strings.TrimSpace(line) {
	case "stats":
		conn.Write([]byte("OK|" + srv.Stats() + "\n"))

	case "shutdown":
		conn.Write([]byte("OK|Shutting down\n"))
		conn.Close()

		logger.Info("shutdown requested via control socket")
		srv.Shutdown()

		os.Remove(controlSocketPath)
		os.Exit(0)

	default:
		conn.Write([]byte("ERROR|Unknown command\n"))
	}
}
