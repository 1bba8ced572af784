package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/geosight/geosight/internal/models"
	"github.com/geosight/geosight/internal/platforms"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	auditBrand       string
	auditIndustry    string
	auditURL         string
	auditUseCase     string
	auditCompetitors []string
	auditMode        string
)

func init() {
	auditCmd.Flags().StringVarP(&auditBrand, "brand", "b", "", "Brand name to audit (required)")
	auditCmd.Flags().StringVarP(&auditIndustry, "industry", "i", "software", "Industry the brand competes in")
	auditCmd.Flags().StringVar(&auditURL, "url", "", "Brand website")
	auditCmd.Flags().StringVar(&auditUseCase, "use-case", "", "Use case asked about in quick audits")
	auditCmd.Flags().StringSliceVarP(&auditCompetitors, "competitors", "c", nil, "Comma-separated competitor names")
	auditCmd.Flags().StringVarP(&auditMode, "mode", "m", string(models.ModeComprehensive), "Audit mode: comprehensive or quick")
	_ = auditCmd.MarkFlagRequired("brand")
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run one audit and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		registry := newRegistry(cfg)
		auditService, err := newAuditService(ctx, cfg, registry)
		if err != nil {
			return err
		}

		result, err := auditService.RunAudit(ctx, models.AuditRequest{
			BrandName:   auditBrand,
			Industry:    auditIndustry,
			URL:         auditURL,
			UseCase:     auditUseCase,
			Competitors: auditCompetitors,
			Mode:        models.AuditMode(strings.ToLower(auditMode)),
		})
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	},
}

const connectivityQuery = "In one sentence, what is generative engine optimization?"

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "Check connectivity to every configured AI platform",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := newRegistry(cfg)

		failed := 0
		for _, platform := range models.AllPlatforms {
			fmt.Printf("%-12s ", platform)

			client, ok := registry.Client(platform)
			if !ok || !client.IsEnabled() {
				fmt.Println("SIMULATED (no API key)")
				continue
			}

			if err := checkPlatform(cmd.Context(), client); err != nil {
				fmt.Printf("FAILED: %v\n", err)
				failed++
				continue
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d platform(s) failed the connectivity check", failed)
		}
		return nil
	},
}

func checkPlatform(ctx context.Context, client platforms.Client) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()

	start := time.Now()
	resp, err := client.Query(ctx, models.PlatformQuery{
		Platform: client.Platform(),
		Category: models.CategoryIndustry,
		Text:     connectivityQuery,
	})
	if err != nil {
		return err
	}

	logrus.Debugf("%s answered: %s", client.GetName(), resp.Response)
	fmt.Printf("OK (%d chars in %v)\n", len(resp.Response), time.Since(start).Round(time.Millisecond))
	return nil
}
