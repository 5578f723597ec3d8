package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/noah-isme/studio-api/internal/dto"
	"github.com/noah-isme/studio-api/internal/summary"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := a.store.Stats()
			w := a.table("MÉTRICA\tVALOR")
			fmt.Fprintf(w, "Alunos\t%d\n", st.Students.Total)
			fmt.Fprintf(w, "Ativos\t%d\n", st.Students.Active)
			fmt.Fprintf(w, "Inativos\t%d\n", st.Students.Inactive)
			fmt.Fprintf(w, "Experimentais\t%d\n", st.Students.Trial)
			fmt.Fprintf(w, "Aulas agendadas\t%d\n", st.Schedules.Total)
			fmt.Fprintf(w, "Próximas aulas\t%d\n", st.Schedules.Upcoming)
			fmt.Fprintf(w, "Receitas\t%s\n", st.Finance.Income.StringFixed(2))
			fmt.Fprintf(w, "Despesas\t%s\n", st.Finance.Expense.StringFixed(2))
			fmt.Fprintf(w, "Saldo\t%s\n", st.Finance.Balance.StringFixed(2))
			fmt.Fprintf(w, "Pendente\t%s\n", st.Finance.Pending.StringFixed(2))
			fmt.Fprintf(w, "Pago\t%s\n", st.Finance.Paid.StringFixed(2))
			return w.Flush()
		},
	}
}

func newDraftCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "draft", Short: "Draft texts with the assistant"}

	var extra string
	note := &cobra.Command{
		Use:   "note STUDENT_ID",
		Short: "Draft a class description for a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			out, err := a.store.DraftClassNote(ctx, id, extra)
			if err != nil {
				return err
			}
			a.done(out.Text)
			return nil
		},
	}
	note.Flags().StringVar(&extra, "context", "", "extra context for the class")

	var intent string
	message := &cobra.Command{
		Use:   "message STUDENT_ID",
		Short: "Draft a WhatsApp message for a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			out, err := a.store.DraftMessage(ctx, id, dto.MessageIntent(intent))
			if err != nil {
				return err
			}
			a.done(out.Text)
			if out.ShareURL != "" {
				a.done(out.ShareURL)
			}
			return nil
		},
	}
	message.Flags().StringVar(&intent, "intent", string(dto.IntentReminder), "lembrete, boas-vindas or cobranca")

	cmd.AddCommand(note, message)
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var format, search, status, dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered student list as CSV or PDF",
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := a.store.ExportStudents(dto.ExportFormat(format), search, status)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, file.Filename)
			if err := os.WriteFile(path, file.Payload, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			a.done(path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(dto.ExportCSV), "csv or pdf")
	cmd.Flags().StringVar(&search, "search", "", "match name or email")
	cmd.Flags().StringVar(&status, "status", summary.StatusAll, "Todos, Ativo, Inativo or Experimental")
	cmd.Flags().StringVar(&dir, "out", ".", "directory to write the file to")
	return cmd
}
