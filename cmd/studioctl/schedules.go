package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/noah-isme/studio-api/internal/service"
)

func newSchedulesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "schedules", Short: "Booked classes"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List classes, latest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := a.table("ID\tALUNO\tDATA\tDURAÇÃO\tNOTAS")
			for _, s := range a.store.Snapshot().Schedules {
				name := "-"
				if s.Student != nil {
					name = s.Student.Name
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%d min\t%s\n", s.ID, name, s.ScheduledAt.Local().Format("02/01/2006 15:04"), s.DurationMinutes, s.Notes)
			}
			return w.Flush()
		},
	}

	var (
		studentID int64
		at        string
		duration  int
		notes     string
		draft     bool
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Book a class for a student",
		Example: `  studioctl schedules add --student 3 --at 2026-10-20T09:00:00-03:00 --duration 50
  studioctl schedules add --student 3 --at 2026-10-20T09:00:00-03:00 --draft-notes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if draft && notes == "" {
				text, err := a.store.DraftClassNote(ctx, studentID, "")
				if err != nil {
					return err
				}
				notes = text.Text
			}
			req := service.CreateScheduleRequest{
				StudentID:       service.NumberText(strconv.FormatInt(studentID, 10)),
				ScheduledAt:     at,
				DurationMinutes: service.NumberText(strconv.Itoa(duration)),
				Notes:           notes,
			}
			if err := a.store.AddSchedule(ctx, req); err != nil {
				return err
			}
			a.done("Aula agendada com sucesso!")
			return nil
		},
	}
	add.Flags().Int64Var(&studentID, "student", 0, "student id")
	add.Flags().StringVar(&at, "at", "", "class start as an RFC 3339 timestamp")
	add.Flags().IntVar(&duration, "duration", 60, "length in minutes")
	add.Flags().StringVar(&notes, "notes", "", "class notes")
	add.Flags().BoolVar(&draft, "draft-notes", false, "draft the notes with the assistant when --notes is empty")
	_ = add.MarkFlagRequired("student")
	_ = add.MarkFlagRequired("at")

	cmd.AddCommand(list, add)
	return cmd
}
