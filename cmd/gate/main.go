// gate 入場口的手動驗證終端：讀入掃描槍／鍵盤輸入的票券碼，
// 經確認後呼叫遠端驗證服務並顯示結果
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"ticket-qr-gate/config"
	"ticket-qr-gate/internal/acquirer"
	"ticket-qr-gate/internal/client"
	"ticket-qr-gate/internal/verifier"
)

func main() {
	cfg := config.LoadConfig()

	httpClient := client.NewHTTPClient(cfg.Scanner.ValidateBaseURL)
	controller := verifier.NewController(httpClient, &verifier.ControllerConfig{
		AutoCloseDelay: cfg.Scanner.AutoCloseDelay,
	})

	manual := acquirer.NewManualEntry(func(rawCode string) {
		if err := controller.Acquire(rawCode); err != nil {
			fmt.Printf("ignored: %v\n", err)
		}
	})

	fmt.Printf("ticket gate connected to %s\n", cfg.Scanner.ValidateBaseURL)
	fmt.Println("scan a code (or type it) and press enter; empty line cancels; ctrl-d quits")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			controller.Cancel()
			fmt.Println("cancelled")
			continue
		}

		if err := manual.Submit(line); err != nil {
			fmt.Printf("input rejected: %v\n", err)
			continue
		}

		snap := controller.Snapshot()
		fmt.Printf("acquired event=%q code=%q, confirm? [y/N] ", snap.EventID, snap.Code)
		if !scanner.Scan() {
			break
		}
		answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if answer != "y" {
			controller.Cancel()
			fmt.Println("cancelled")
			continue
		}

		if err := controller.Confirm(context.Background()); err != nil {
			fmt.Printf("rejected before validation: %v\n", err)
			controller.Cancel()
			continue
		}

		snap = controller.Snapshot()
		if snap.TicketConfirmed {
			fmt.Println("ticket verified")
		} else {
			fmt.Printf("rejected: %s\n", snap.ScanError)
		}
		controller.Cancel()
	}
}
