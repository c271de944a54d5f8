package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/technique-ps/technique/internal/models"
	"github.com/technique-ps/technique/internal/storage"
	"github.com/technique-ps/technique/internal/utils"
)

var (
	showBlockWeek    int
	showBlockPatient string
)

var showBlockCmd = &cobra.Command{
	Use:   "show-block [block-id]",
	Short: "Show a block's planned targets and logged actuals, week by week",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()

		var block *models.Block
		var err error
		switch {
		case len(args) == 1:
			block, err = st.GetBlock(args[0])
		case showBlockPatient != "":
			block, err = st.GetLatestBlock(showBlockPatient)
		default:
			return fmt.Errorf("give a block id or --patient")
		}
		if err != nil {
			return err
		}
		if err := st.EnsurePatientAccess(userID(), block.PatientID); err != nil {
			return err
		}

		detail, err := st.GetBlockDetail(block.ID)
		if err != nil {
			return err
		}

		cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Println(cyanBold(fmt.Sprintf("Block %s | %d weeks | deload week %d | %s",
			detail.Block.ID, detail.Block.Weeks, detail.Block.DeloadWeek, detail.Block.Goal)))

		for _, wd := range detail.Weeks {
			if showBlockWeek > 0 && wd.Week.WeekNo != showBlockWeek {
				continue
			}
			printWeek(wd)
		}

		return nil
	},
}

func printWeek(wd models.WeekDetail) {
	header := fmt.Sprintf("Week %d (%s)", wd.Week.WeekNo, wd.Week.WeekStart.Format(utils.DateLayout))
	if wd.Week.Deload {
		header += " " + color.New(color.FgYellow, color.Bold).Sprint("DELOAD")
	}
	fmt.Println()
	fmt.Println(color.New(color.FgGreen, color.Bold).Sprint(header))

	for _, session := range wd.Sessions {
		fmt.Printf("  Session %s\n", color.New(color.FgMagenta, color.Bold).Sprint(session.Label))
		for _, row := range session.Rows {
			fmt.Printf("    %s\n", formatTargetRow(row))
		}
	}
}

func formatTargetRow(row models.TargetRow) string {
	t := row.Target

	var b strings.Builder
	name := row.ExerciseName
	if row.GroupKey != "" {
		name = fmt.Sprintf("[%s] %s", row.GroupKey, name)
	}
	fmt.Fprintf(&b, "%-32s %d", name, t.Sets)

	if t.TimeSec != nil {
		fmt.Fprintf(&b, " x %ds", *t.TimeSec)
	} else if t.Reps != nil {
		fmt.Fprintf(&b, " x %d", *t.Reps)
	}

	if t.LoadKg != nil {
		fmt.Fprintf(&b, " @ %.1f kg", *t.LoadKg)
	}
	if t.Pct1RM != nil {
		fmt.Fprintf(&b, " (%.0f%% 1RM)", *t.Pct1RM*100)
	}
	if t.RPETarget != nil {
		fmt.Fprintf(&b, " RPE %d", *t.RPETarget)
	}
	if t.Notes != "" {
		fmt.Fprintf(&b, " | %s", t.Notes)
	}

	if t.Completed || t.ActualSets != nil || t.ActualReps != nil || t.ActualTimeSec != nil || t.ActualLoadKg != nil {
		b.WriteString("  ")
		b.WriteString(color.New(color.FgGreen).Sprint(formatActuals(t)))
	}

	return b.String()
}

func formatActuals(t models.WeekTarget) string {
	var parts []string
	if t.ActualSets != nil && t.ActualReps != nil {
		parts = append(parts, fmt.Sprintf("%dx%d", *t.ActualSets, *t.ActualReps))
	} else if t.ActualReps != nil {
		parts = append(parts, fmt.Sprintf("%d reps", *t.ActualReps))
	}
	if t.ActualTimeSec != nil {
		parts = append(parts, fmt.Sprintf("%ds", *t.ActualTimeSec))
	}
	if t.ActualLoadKg != nil {
		parts = append(parts, fmt.Sprintf("%.1f kg", *t.ActualLoadKg))
	}
	if t.Completed {
		parts = append(parts, "✓")
	}
	return "done: " + strings.Join(parts, " ")
}

func init() {
	showBlockCmd.Flags().IntVarP(&showBlockWeek, "week", "w", 0, "Show only one week")
	showBlockCmd.Flags().StringVarP(&showBlockPatient, "patient", "p", "", "Show the patient's latest block")

	rootCmd.AddCommand(showBlockCmd)
}
