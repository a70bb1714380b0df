package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/formrelay/formrelay/internal/config"
	"github.com/formrelay/formrelay/internal/handler"
	"github.com/formrelay/formrelay/internal/logger"
	"github.com/formrelay/formrelay/internal/mail"
	"github.com/formrelay/formrelay/internal/relay"
)

var rootCmd = &cobra.Command{
	Use:   "relayctl",
	Short: "Operator tool for the formrelay mail relay",
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Print the health document for the local configuration",
	RunE:  runCheck,
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Relay a one-off test submission through the configured transport",
	RunE:  runSend,
}

var (
	sendName    string
	sendEmail   string
	sendMessage string
	sendSubject string
)

func init() {
	sendCmd.Flags().StringVar(&sendName, "name", "Relay Test", "submitter name")
	sendCmd.Flags().StringVar(&sendEmail, "email", "", "submitter email (required)")
	sendCmd.Flags().StringVar(&sendMessage, "message", "Test message from relayctl", "message body")
	sendCmd.Flags().StringVar(&sendSubject, "subject", "", "optional subject")
	sendCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(sendCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	doc := handler.BuildHealth(cfg, 0)
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if doc.Status != "OK" {
		return fmt.Errorf("configuration is %s", doc.Status)
	}
	return nil
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log.Level, "console")

	transport, err := mail.Select(cfg)
	if err != nil {
		return err
	}
	if cfg.Relay.Recipient == "" {
		return relay.NewError(relay.KindConfiguration, "no recipient configured")
	}

	raw, _ := json.Marshal(map[string]string{
		"name":    sendName,
		"email":   sendEmail,
		"message": sendMessage,
		"subject": sendSubject,
	})
	sub, err := relay.ParseSubmission(raw)
	if err != nil {
		return err
	}

	msg := relay.BuildEmail(sub, cfg.SMTP.User, cfg.Relay.Recipient, transport.SpoofsFrom())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result := mail.NewDispatcher(transport, log.WithComponent("dispatcher")).Dispatch(ctx, msg)
	if !result.OK {
		return fmt.Errorf("send failed (%s): %s", result.Kind, result.Detail)
	}

	if result.ID != "" {
		fmt.Printf("sent via %s (id: %s)\n", transport.Name(), result.ID)
	} else {
		fmt.Printf("sent via %s\n", transport.Name())
	}
	return nil
}
