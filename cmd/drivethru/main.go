// cmd/drivethru/main.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"drivethru/internal/catalog"
	"drivethru/internal/common/config"
	"drivethru/internal/common/logger"
	"drivethru/internal/engine"
	"drivethru/internal/nlu"
	"drivethru/internal/session"
)

var (
	assistantStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	correctionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	userStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Load(cfg.Menu.Dir)
	if err != nil {
		zapLog.Fatal("menu load failed", zap.Error(err))
	}
	zapLog.Info("menu loaded", zap.String("dir", cfg.Menu.Dir))

	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Warn("metrics server stopped", zap.Error(err))
			}
		}()
		zapLog.Info("metrics server started", zap.String("address", cfg.Metrics.Address))
	}

	var store session.Store
	if cfg.Session.RedisAddress != "" {
		redisStore, err := session.NewRedisStore(ctx, session.RedisConfig{
			Address:  cfg.Session.RedisAddress,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
			TTL:      config.SessionTTL(cfg),
		}, log)
		if err != nil {
			zapLog.Warn("session store unavailable, continuing without persistence", zap.Error(err))
		} else {
			store = redisStore
			defer redisStore.Close()
		}
	}

	client := nlu.NewOpenAIClient(cfg, cat, log)
	eng := engine.New(cat, log)

	if err := runConversation(ctx, eng, client, store, log); err != nil {
		zapLog.Fatal("conversation failed", zap.Error(err))
	}
}

// runConversation drives one customer session: deliver the next pending
// assistant message, interpret the reply, validate, apply business rules,
// and repeat until the customer is done.
func runConversation(ctx context.Context, eng *engine.Engine, client nlu.Client, store session.Store, log logger.Logger) error {
	sess := session.NewSession()
	o := sess.Order
	out := engine.NewOutbox()
	reader := bufio.NewScanner(os.Stdin)

	eng.StartOrder(out)

	for !o.Finished {
		for {
			msg, ok := out.NextMessage()
			if !ok {
				break
			}
			fmt.Println(assistantStyle.Render(msg.Text))

			userMsg, err := readLine(reader)
			if err != nil {
				return err
			}

			result, err := client.Interpret(ctx, nlu.Request{
				UserMessage: userMsg,
				Assistant:   msg,
				Order:       o,
			})
			if err != nil {
				log.WithError(err).Warn("turn not understood", nil)
				fmt.Println(correctionStyle.Render("Sorry, I didn't catch that. Could you say it again?"))
				out.Prompt(msg.Text, msg.Tag)
				continue
			}

			o.Replace(result.Lines, result.Finished)
			res := eng.Validate(o, out)
			printCorrections(out)
			if res == engine.ResultOK {
				eng.ApplyRules(o, out)
				printCorrections(out)
			}

			persist(ctx, store, sess, log)
		}

		if !o.Finished {
			eng.LastCall(out)
		}
	}

	eng.FinishOrder(o, out)
	if msg, ok := out.NextMessage(); ok {
		fmt.Println(assistantStyle.Render(msg.Text))
	}
	if store != nil {
		if err := store.Delete(ctx, sess.ID); err != nil {
			log.WithError(err).Warn("session cleanup failed", nil)
		}
	}
	return nil
}

func readLine(reader *bufio.Scanner) (string, error) {
	fmt.Print(userStyle.Render("User: "))
	if !reader.Scan() {
		if err := reader.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("input closed")
	}
	return strings.TrimSpace(reader.Text()), nil
}

func printCorrections(out *engine.Outbox) {
	for _, c := range out.DrainCorrections() {
		fmt.Println(correctionStyle.Render(c))
	}
}

func persist(ctx context.Context, store session.Store, sess *session.Session, log logger.Logger) {
	if store == nil {
		return
	}
	if err := store.Save(ctx, sess); err != nil {
		log.WithError(err).Warn("session save failed", nil)
	}
}
