package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/alutalk/channel/internal/biz/domain"
	"github.com/alutalk/channel/internal/data"
)

var (
	auditLimit int
	auditJSON  bool
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent moderation decisions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Moderation.AuditDBPath == "" {
			return fmt.Errorf("audit log disabled: set AUDIT_DB_PATH")
		}

		auditRepo, err := data.NewAuditRepo(cfg.Moderation.AuditDBPath)
		if err != nil {
			return err
		}
		defer auditRepo.Close()

		events, err := auditRepo.List(cmd.Context(), auditLimit)
		if err != nil {
			return fmt.Errorf("listing moderation events: %w", err)
		}

		if auditJSON {
			out, err := json.MarshalIndent(events, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Time", "Sender", "Action", "Masked", "Attempts", "Fallback"})
		table.SetAutoWrapText(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetBorder(false)
		table.AppendBulk(lo.Map(events, func(e domain.ModerationEvent, _ int) []string {
			return []string{
				strconv.FormatInt(e.ID, 10),
				e.CreatedAt.Local().Format(time.DateTime),
				e.Sender,
				string(e.Action),
				strconv.Itoa(e.MaskedTokens),
				strconv.Itoa(e.Attempts),
				strconv.FormatBool(e.Fallback),
			}
		}))
		table.Render()
		return nil
	},
}

func init() {
	auditCmd.Flags().IntVar(&auditLimit, "limit", 50, "number of events to show")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "output as JSON")
}
