package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mathmystery/internal/account"
	"mathmystery/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the student roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("output")

		if format != "csv" && format != "pdf" {
			return fmt.Errorf("unsupported format %q (want csv or pdf)", format)
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		users, err := st.Users(context.Background())
		if err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		var students []*account.User
		for _, u := range users {
			if u.IsStudent() {
				students = append(students, u)
			}
		}

		if out == "" {
			out = "roster." + format
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()

		if format == "pdf" {
			err = report.WritePDF(f, students)
		} else {
			err = report.WriteCSV(f, students)
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}

		fmt.Printf("Exported %d students to %s\n", len(students), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "csv", "Export format: csv or pdf")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default roster.<format>)")
}
